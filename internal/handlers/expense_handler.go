package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"finsight/internal/config"
	apperrors "finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/services"
	"finsight/internal/uuid"
)

// ExpenseHandler handles expense recording and import requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the request payload for recording an expense
type CreateExpenseRequest struct {
	Date        string  `json:"date" binding:"required,ledger_date"`
	Category    string  `json:"category" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"max=500"`
}

// UploadResponse represents the outcome of a bulk CSV import
type UploadResponse struct {
	Message           string      `json:"message"`
	ImportedCount     int         `json:"imported_count"`
	FailedRowsDetails interface{} `json:"failed_rows_details"`
}

// ListExpenses returns every recorded expense
// @Summary     List expenses
// @Description List all recorded expenses with their raw stored fields
// @Tags        expenses
// @Produce     json
// @Success     200 {array} models.Expense "Recorded expenses"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	expenses, err := h.expenseService.ListExpenses()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// CreateExpense records a single expense
// @Summary     Record an expense
// @Description Record a single expense transaction
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.CreateExpense(date, req.Category, req.Amount, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Expense added successfully",
		"expense": expense,
	})
}

// UploadCSV imports expenses in bulk from an uploaded statement
// @Summary     Import expenses from CSV
// @Description Upload a CSV bank statement; valid rows are imported, rejected rows are reported per row
// @Tags        expenses
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "CSV statement"
// @Success     200 {object} UploadResponse "Import outcome"
// @Failure     400 {object} ErrorResponse "Missing file, wrong type, empty file, or missing required column"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/upload_csv [post]
func (h *ExpenseHandler) UploadCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.ErrMissingFile)
		return
	}
	if strings.TrimSpace(fileHeader.Filename) == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrMissingFile, "No selected file"))
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".csv") {
		respondWithError(c, apperrors.ErrInvalidFileType)
		return
	}
	if fileHeader.Size == 0 {
		respondWithError(c, apperrors.ErrEmptyFile)
		return
	}

	// Spool the upload to a temp file; removed whatever the outcome.
	tmpPath := filepath.Join(config.Get().UploadDir, uuid.New()+".csv")
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer os.Remove(tmpPath)

	f, err := os.Open(tmpPath)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer f.Close()

	result, err := h.expenseService.ImportCSV(f)
	if err != nil {
		respondWithError(c, err)
		return
	}

	message := fmt.Sprintf("%d expenses imported successfully.", result.ImportedCount)
	if len(result.FailedRows) > 0 {
		message += fmt.Sprintf(" %d rows failed to import.", len(result.FailedRows))
	}

	var details interface{} = "None"
	if len(result.FailedRows) > 0 {
		details = result.FailedRows
	}

	c.JSON(http.StatusOK, UploadResponse{
		Message:           message,
		ImportedCount:     result.ImportedCount,
		FailedRowsDetails: details,
	})
}
