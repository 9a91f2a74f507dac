package services

import (
	"io"

	"finsight/internal/ledger"
	"finsight/internal/models"
)

// ExpenseServicer defines expense recording operations.
type ExpenseServicer interface {
	ListExpenses() ([]models.Expense, error)
	CreateExpense(date models.DateOnly, category string, amount float64, description string) (*models.Expense, error)
	ImportCSV(r io.Reader) (*ledger.ImportResult, error)
}

// InsightsServicer defines aggregate statistics and forecasting over the
// ledger.
type InsightsServicer interface {
	Summary() (*SummaryResult, error)
	SpendingByCategory() (map[string]float64, error)
	MonthlySpending() (map[string]float64, error)
	ForecastNextMonth() (*ForecastResult, error)
}
