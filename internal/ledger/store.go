// Package ledger implements the flat-file expense store. The full record set
// is the unit of persistence: every write reloads the table and rewrites the
// whole file, which trades O(n) writes for immunity to partial-append
// corruption.
package ledger

import (
	"encoding/csv"
	"errors"
	"math"
	"os"
	"strconv"
	"sync"

	"finsight/internal/logger"
	"finsight/internal/models"
)

// header is the canonical column set of the ledger file.
var header = []string{"id", "date", "category", "amount", "description"}

// Store is a CSV-file-backed expense store. A single Store instance owns the
// file; the mutex serializes the load-mutate-persist cycles of overlapping
// requests.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a Store backed by the CSV file at path. The file is
// created lazily on first access.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted ledger. An absent file is created empty with the
// canonical header. A malformed or empty file, or rows whose date or amount
// fail to parse, degrade to fewer records rather than an error; the file
// itself is left untouched.
func (s *Store) Load() ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Append loads the current ledger, concatenates records preserving their
// order, and persists the full table.
func (s *Store) Append(records []models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load()
	if err != nil {
		return err
	}
	return s.persist(append(existing, records...))
}

// Persist rewrites the whole ledger file from records, dates in YYYY-MM-DD
// form.
func (s *Store) Persist(records []models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(records)
}

func (s *Store) load() ([]models.Expense, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := s.persist(nil); err != nil {
			return nil, err
		}
		return []models.Expense{}, nil
	}
	if err != nil {
		logger.Get().Warnw("ledger file unreadable, treating as empty",
			"path", s.path,
			"error", err.Error(),
		)
		return []models.Expense{}, nil
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		logger.Get().Warnw("ledger file malformed, treating as empty",
			"path", s.path,
			"error", err.Error(),
		)
		return []models.Expense{}, nil
	}
	if len(rows) <= 1 {
		return []models.Expense{}, nil
	}

	expenses := make([]models.Expense, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < len(header) {
			continue
		}
		date, err := models.ParseDate(row[1])
		if err != nil {
			continue
		}
		amount, err := strconv.ParseFloat(row[3], 64)
		if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
			// Non-finite amounts cannot be aggregated or serialized; drop the
			// row like any other unparsable one.
			continue
		}
		expenses = append(expenses, models.Expense{
			ID:          row[0],
			Date:        date,
			Category:    row[2],
			Amount:      amount,
			Description: row[4],
		})
	}
	return expenses, nil
}

func (s *Store) persist(records []models.Expense) error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, e := range records {
		row := []string{
			e.ID,
			e.Date.Format(models.DateFormat),
			e.Category,
			strconv.FormatFloat(e.Amount, 'f', -1, 64),
			e.Description,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return f.Close()
}
