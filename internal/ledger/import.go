package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	apperrors "finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/uuid"
)

// Sentinels applied to records imported from a bank statement upload. These
// are deliberate product defaults, not inferred from the data.
const (
	ImportCategory    = "Uncategorized"
	ImportDescription = "Uploaded via CSV"
)

// Accepted column names per logical field, matched case-insensitively against
// the uploaded file's header. Date and amount are required; description is
// optional.
var (
	dateAliases        = []string{"date", "transaction date", "posting date"}
	descriptionAliases = []string{"description", "narrative", "details", "transaction details", "memo"}
	amountAliases      = []string{"amount", "debit", "value", "expense"}
)

// RowFailure describes a single rejected row from a bulk import.
type RowFailure struct {
	RowNumber int               `json:"row_number"`
	Data      map[string]string `json:"data"`
	Reason    string            `json:"reason"`
}

// ImportResult reports the outcome of a bulk import.
type ImportResult struct {
	ImportedCount int
	FailedRows    []RowFailure
}

// ImportCSV parses an uploaded tabular statement and appends every valid row
// to the ledger in one persist operation after the full scan. Rows whose date
// or amount cannot be parsed, or whose amount is not positive, are collected
// in FailedRows and never persisted. A missing required column fails the
// whole import before anything is written.
func (s *Store) ImportCSV(r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Could not parse uploaded CSV: "+err.Error())
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrEmptyFile
	}

	head := rows[0]
	dateIdx, ok := findColumn(head, dateAliases)
	if !ok {
		return nil, missingColumnError("date", dateAliases)
	}
	amountIdx, ok := findColumn(head, amountAliases)
	if !ok {
		return nil, missingColumnError("amount", amountAliases)
	}
	descIdx, hasDesc := findColumn(head, descriptionAliases)

	var imported []models.Expense
	var failed []RowFailure
	for i, row := range rows[1:] {
		// Row numbers are reported as in the file, counting the header line.
		rowNumber := i + 2
		data := rowData(head, row)

		if dateIdx >= len(row) || amountIdx >= len(row) {
			failed = append(failed, RowFailure{rowNumber, data, "Row has fewer columns than the header."})
			continue
		}
		date, err := models.ParseDate(row[dateIdx])
		if err != nil {
			failed = append(failed, RowFailure{rowNumber, data, "Error parsing row: " + err.Error()})
			continue
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(row[amountIdx]), 64)
		if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
			failed = append(failed, RowFailure{rowNumber, data, fmt.Sprintf("Error parsing row: unrecognized amount %q", row[amountIdx])})
			continue
		}
		if amount <= 0 {
			failed = append(failed, RowFailure{rowNumber, data, "Amount must be a positive value for an expense."})
			continue
		}

		description := ImportDescription
		if hasDesc && descIdx < len(row) && strings.TrimSpace(row[descIdx]) != "" {
			description = row[descIdx]
		}

		imported = append(imported, models.Expense{
			ID:          uuid.New(),
			Date:        date,
			Category:    ImportCategory,
			Amount:      amount,
			Description: description,
		})
	}

	if len(imported) > 0 {
		if err := s.Append(imported); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &ImportResult{ImportedCount: len(imported), FailedRows: failed}, nil
}

// findColumn returns the index of the first header cell matching any of the
// aliases, case-insensitively.
func findColumn(head []string, aliases []string) (int, bool) {
	for _, alias := range aliases {
		for i, col := range head {
			if strings.EqualFold(strings.TrimSpace(col), alias) {
				return i, true
			}
		}
	}
	return 0, false
}

func missingColumnError(field string, aliases []string) error {
	return apperrors.WithMessage(apperrors.ErrMissingColumn,
		fmt.Sprintf("Missing required column. Could not find a column for: %s. Expected one of: %s", field, strings.Join(aliases, ", ")))
}

// rowData maps header names to the row's raw values for failure reporting.
func rowData(head, row []string) map[string]string {
	data := make(map[string]string, len(head))
	for i, col := range head {
		if i < len(row) {
			data[col] = row[i]
		}
	}
	return data
}
