package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"finsight/internal/config"
	apperrors "finsight/internal/errors"
	"finsight/internal/ledger"
	"finsight/internal/logger"
	"finsight/internal/models"
	"finsight/internal/services"
	"finsight/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// --- mock expense service ---

type mockExpenseService struct {
	listExpensesFn  func() ([]models.Expense, error)
	createExpenseFn func(date models.DateOnly, category string, amount float64, description string) (*models.Expense, error)
	importCSVFn     func(r io.Reader) (*ledger.ImportResult, error)
}

func (m *mockExpenseService) ListExpenses() ([]models.Expense, error) {
	if m.listExpensesFn != nil {
		return m.listExpensesFn()
	}
	return []models.Expense{}, nil
}

func (m *mockExpenseService) CreateExpense(date models.DateOnly, category string, amount float64, description string) (*models.Expense, error) {
	if m.createExpenseFn != nil {
		return m.createExpenseFn(date, category, amount, description)
	}
	return &models.Expense{ID: "test-id", Date: date, Category: category, Amount: amount, Description: description}, nil
}

func (m *mockExpenseService) ImportCSV(r io.Reader) (*ledger.ImportResult, error) {
	if m.importCSVFn != nil {
		return m.importCSVFn(r)
	}
	return &ledger.ImportResult{}, nil
}

var _ services.ExpenseServicer = (*mockExpenseService)(nil)

func setupExpenseRouter(handler *ExpenseHandler) *gin.Engine {
	r := gin.New()
	r.GET("/expenses", handler.ListExpenses)
	r.POST("/expenses", handler.CreateExpense)
	r.POST("/expenses/upload_csv", handler.UploadCSV)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExpenseHandler_ListExpenses(t *testing.T) {
	t.Run("returns 200 with records", func(t *testing.T) {
		svc := &mockExpenseService{
			listExpensesFn: func() ([]models.Expense, error) {
				d, _ := models.ParseDate("2024-01-05")
				return []models.Expense{{ID: "a", Date: d, Category: "Food", Amount: 4.5, Description: "coffee"}}, nil
			},
		}
		r := setupExpenseRouter(NewExpenseHandler(svc))

		w := doJSON(t, r, http.MethodGet, "/expenses", "")

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var got []map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if len(got) != 1 || got[0]["date"] != "2024-01-05" {
			t.Errorf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("returns 500 on service failure", func(t *testing.T) {
		svc := &mockExpenseService{
			listExpensesFn: func() ([]models.Expense, error) {
				return nil, apperrors.ErrInternalServer
			},
		}
		r := setupExpenseRouter(NewExpenseHandler(svc))

		w := doJSON(t, r, http.MethodGet, "/expenses", "")
		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", w.Code)
		}
	})
}

func TestExpenseHandler_CreateExpense(t *testing.T) {
	t.Run("returns 201 with created expense", func(t *testing.T) {
		r := setupExpenseRouter(NewExpenseHandler(&mockExpenseService{}))

		w := doJSON(t, r, http.MethodPost, "/expenses", `{"date":"2024-01-05","category":"Food","amount":4.5,"description":"coffee"}`)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var got struct {
			Message string         `json:"message"`
			Expense models.Expense `json:"expense"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if got.Expense.ID == "" {
			t.Error("expected a generated id in the response")
		}
	})

	t.Run("returns 400 when required fields missing", func(t *testing.T) {
		r := setupExpenseRouter(NewExpenseHandler(&mockExpenseService{}))

		for _, body := range []string{
			`{"category":"Food","amount":4.5}`,
			`{"date":"2024-01-05","amount":4.5}`,
			`{"date":"2024-01-05","category":"Food"}`,
		} {
			w := doJSON(t, r, http.MethodPost, "/expenses", body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("body %s: expected 400, got %d", body, w.Code)
			}
		}
	})

	t.Run("returns 400 on unparsable date", func(t *testing.T) {
		r := setupExpenseRouter(NewExpenseHandler(&mockExpenseService{}))

		w := doJSON(t, r, http.MethodPost, "/expenses", `{"date":"soon","category":"Food","amount":4.5}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("returns 400 on non-positive amount", func(t *testing.T) {
		r := setupExpenseRouter(NewExpenseHandler(&mockExpenseService{}))

		w := doJSON(t, r, http.MethodPost, "/expenses", `{"date":"2024-01-05","category":"Food","amount":-4}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func multipartBody(t *testing.T, fieldName, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if fileName != "" {
		fw, err := mw.CreateFormFile(fieldName, fileName)
		if err != nil {
			t.Fatalf("failed to build multipart body: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write multipart content: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func uploadCSV(t *testing.T, r *gin.Engine, fileName, content string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, "file", fileName, content)
	req := httptest.NewRequest(http.MethodPost, "/expenses/upload_csv", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExpenseHandler_UploadCSV(t *testing.T) {
	setUploadDir := func(t *testing.T) {
		t.Helper()
		t.Setenv("UPLOAD_DIR", t.TempDir())
		if _, err := config.Load(); err != nil {
			t.Fatalf("failed to reload config: %v", err)
		}
	}

	t.Run("returns 200 with import outcome", func(t *testing.T) {
		setUploadDir(t)
		svc := &mockExpenseService{
			importCSVFn: func(r io.Reader) (*ledger.ImportResult, error) {
				return &ledger.ImportResult{ImportedCount: 2}, nil
			},
		}
		r := setupExpenseRouter(NewExpenseHandler(svc))

		w := uploadCSV(t, r, "statement.csv", "date,amount\n2024-01-05,10\n2024-01-06,20\n")

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var got UploadResponse
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if got.ImportedCount != 2 {
			t.Errorf("expected imported_count 2, got %d", got.ImportedCount)
		}
		if got.FailedRowsDetails != "None" {
			t.Errorf("expected failed_rows_details \"None\", got %v", got.FailedRowsDetails)
		}
	})

	t.Run("reports failed rows", func(t *testing.T) {
		setUploadDir(t)
		svc := &mockExpenseService{
			importCSVFn: func(r io.Reader) (*ledger.ImportResult, error) {
				return &ledger.ImportResult{
					ImportedCount: 1,
					FailedRows: []ledger.RowFailure{
						{RowNumber: 3, Data: map[string]string{"amount": "-1"}, Reason: "Amount must be a positive value for an expense."},
					},
				}, nil
			},
		}
		r := setupExpenseRouter(NewExpenseHandler(svc))

		w := uploadCSV(t, r, "statement.csv", "date,amount\n2024-01-05,10\n2024-01-06,-1\n")

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "\"row_number\":3") {
			t.Errorf("expected failed row details in body, got %s", w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "1 rows failed to import") {
			t.Errorf("expected failure count in message, got %s", w.Body.String())
		}
	})

	t.Run("returns 400 when no file part", func(t *testing.T) {
		setUploadDir(t)
		r := setupExpenseRouter(NewExpenseHandler(&mockExpenseService{}))

		w := uploadCSV(t, r, "", "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("returns 400 on disallowed extension", func(t *testing.T) {
		setUploadDir(t)
		r := setupExpenseRouter(NewExpenseHandler(&mockExpenseService{}))

		w := uploadCSV(t, r, "statement.xlsx", "whatever")
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("returns 400 on empty content", func(t *testing.T) {
		setUploadDir(t)
		r := setupExpenseRouter(NewExpenseHandler(&mockExpenseService{}))

		w := uploadCSV(t, r, "statement.csv", "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("returns 400 when required column missing", func(t *testing.T) {
		setUploadDir(t)
		svc := &mockExpenseService{
			importCSVFn: func(r io.Reader) (*ledger.ImportResult, error) {
				return nil, apperrors.WithMessage(apperrors.ErrMissingColumn, "Missing required column. Could not find a column for: date")
			},
		}
		r := setupExpenseRouter(NewExpenseHandler(svc))

		w := uploadCSV(t, r, "statement.csv", "when,amount\n2024-01-05,10\n")
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "MISSING_COLUMN") {
			t.Errorf("expected MISSING_COLUMN code, got %s", w.Body.String())
		}
	})
}
