package services

import (
	"io"

	apperrors "finsight/internal/errors"
	"finsight/internal/ledger"
	"finsight/internal/models"
	"finsight/internal/uuid"
)

// expenseService handles expense recording business logic.
type expenseService struct {
	store *ledger.Store
}

// NewExpenseService creates a new ExpenseServicer over the given store.
func NewExpenseService(store *ledger.Store) ExpenseServicer {
	return &expenseService{store: store}
}

// ListExpenses returns the full persisted record set.
func (s *expenseService) ListExpenses() ([]models.Expense, error) {
	expenses, err := s.store.Load()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// CreateExpense validates and persists a single expense, returning the stored
// record with its generated id.
func (s *expenseService) CreateExpense(date models.DateOnly, category string, amount float64, description string) (*models.Expense, error) {
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a positive value")
	}

	expense := models.Expense{
		ID:          uuid.New(),
		Date:        date,
		Category:    category,
		Amount:      amount,
		Description: description,
	}

	if err := s.store.Append([]models.Expense{expense}); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// ImportCSV runs a bulk statement import through the store.
func (s *expenseService) ImportCSV(r io.Reader) (*ledger.ImportResult, error) {
	return s.store.ImportCSV(r)
}
