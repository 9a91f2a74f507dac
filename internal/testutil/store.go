// Package testutil provides test helpers for setting up temporary ledger
// stores, creating fixtures, and making assertions.
package testutil

import (
	"path/filepath"
	"testing"

	"finsight/internal/ledger"
	"finsight/internal/models"
	"finsight/internal/uuid"
)

// SetupTestStore creates a ledger store backed by a CSV file in a fresh
// temporary directory, removed when the test finishes.
func SetupTestStore(t *testing.T) *ledger.Store {
	t.Helper()
	return ledger.NewStore(filepath.Join(t.TempDir(), "expenses.csv"))
}

// Expense builds an expense fixture with a generated id. date must be in
// YYYY-MM-DD form.
func Expense(t *testing.T, date, category string, amount float64) models.Expense {
	t.Helper()

	d, err := models.ParseDate(date)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", date, err)
	}
	return models.Expense{
		ID:       uuid.New(),
		Date:     d,
		Category: category,
		Amount:   amount,
	}
}

// SeedStore persists the given expenses into the store.
func SeedStore(t *testing.T, store *ledger.Store, expenses []models.Expense) {
	t.Helper()

	if err := store.Append(expenses); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
}
