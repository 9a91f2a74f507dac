package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateFormat is the canonical form expense dates are persisted in.
const DateFormat = "2006-01-02"

// dateLayouts are the input forms accepted when parsing a date, tried in
// order. Whatever form a date arrives in, it is stored as DateFormat.
var dateLayouts = []string{
	DateFormat,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// DateOnly is a calendar date with no time component. It marshals to and from
// "YYYY-MM-DD" JSON strings.
type DateOnly struct {
	time.Time
}

// NewDateOnly truncates t to its calendar date in UTC.
func NewDateOnly(t time.Time) DateOnly {
	return DateOnly{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses s against the accepted date layouts.
func ParseDate(s string) (DateOnly, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDateOnly(t), nil
		}
	}
	return DateOnly{}, fmt.Errorf("unrecognized date %q, expected a form like %s", s, DateFormat)
}

func (d DateOnly) String() string {
	return d.Format(DateFormat)
}

// MonthKey returns the "YYYY-MM" bucket the date falls in.
func (d DateOnly) MonthKey() string {
	return d.Format("2006-01")
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateFormat))
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Expense represents a single recorded expense transaction. The full set of
// expenses is the ledger, persisted as one flat CSV table.
type Expense struct {
	ID          string   `json:"id"`
	Date        DateOnly `json:"date"`
	Category    string   `json:"category"`
	Amount      float64  `json:"amount"`
	Description string   `json:"description"`
}
