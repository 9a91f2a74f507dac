package services

import (
	"fmt"
	"math"
	"sort"

	apperrors "finsight/internal/errors"
	"finsight/internal/ledger"
)

// SummaryResult holds whole-ledger spending statistics.
type SummaryResult struct {
	TotalSpending      float64 `json:"total_spending"`
	AverageTransaction float64 `json:"average_transaction"`
	Count              int     `json:"count"`
}

// ForecastResult holds a projected next-month total and how it was derived.
type ForecastResult struct {
	Prediction float64 `json:"prediction"`
	Message    string  `json:"message"`
}

// insightsService computes aggregate statistics and forecasts over the full
// ledger, reloaded from the store on every call.
type insightsService struct {
	store *ledger.Store
}

// NewInsightsService creates a new InsightsServicer over the given store.
func NewInsightsService(store *ledger.Store) InsightsServicer {
	return &insightsService{store: store}
}

// Summary returns total, mean and count over all recorded expenses, zeros
// when the ledger is empty.
func (s *insightsService) Summary() (*SummaryResult, error) {
	expenses, err := s.store.Load()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(expenses) == 0 {
		return &SummaryResult{}, nil
	}

	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return &SummaryResult{
		TotalSpending:      round2(total),
		AverageTransaction: round2(total / float64(len(expenses))),
		Count:              len(expenses),
	}, nil
}

// SpendingByCategory groups expenses by exact category string and sums the
// amounts per group.
func (s *insightsService) SpendingByCategory() (map[string]float64, error) {
	expenses, err := s.store.Load()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := make(map[string]float64)
	for _, e := range expenses {
		totals[e.Category] += e.Amount
	}
	for category, total := range totals {
		totals[category] = round2(total)
	}
	return totals, nil
}

// MonthlySpending sums expenses per calendar month, keyed "YYYY-MM". Months
// with no transactions are absent, not zero-filled. JSON marshaling emits
// string-keyed maps in sorted key order, which is chronological for these
// keys.
func (s *insightsService) MonthlySpending() (map[string]float64, error) {
	expenses, err := s.store.Load()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := make(map[string]float64)
	for _, e := range expenses {
		totals[e.Date.MonthKey()] += e.Amount
	}
	for month, total := range totals {
		totals[month] = round2(total)
	}
	return totals, nil
}

// ForecastNextMonth projects total spending for the month after the latest
// observed one. With fewer than three months of history it falls back to the
// mean of the observed monthly totals; otherwise it fits a least-squares
// linear trend over the monthly totals and evaluates it at the next index,
// clamped at zero.
func (s *insightsService) ForecastNextMonth() (*ForecastResult, error) {
	expenses, err := s.store.Load()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byMonth := make(map[string]float64)
	for _, e := range expenses {
		byMonth[e.Date.MonthKey()] += e.Amount
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	totals := make([]float64, len(months))
	for i, month := range months {
		totals[i] = byMonth[month]
	}

	n := len(totals)
	switch {
	case n == 0:
		return &ForecastResult{Prediction: 0, Message: "No expense data available for prediction."}, nil
	case n < 3:
		return &ForecastResult{
			Prediction: round2(mean(totals)),
			Message:    fmt.Sprintf("Prediction based on average of %d available month(s). More data is needed for a trend model.", n),
		}, nil
	}

	slope, intercept, ok := fitLinearTrend(totals)
	if !ok {
		return &ForecastResult{
			Prediction: round2(mean(totals)),
			Message:    "Trend model fit failed. Prediction based on historical average spending.",
		}, nil
	}

	predicted := slope*float64(n) + intercept
	return &ForecastResult{
		Prediction: round2(math.Max(0, predicted)),
		Message:    "Prediction based on a linear trend model of historical monthly spending.",
	}, nil
}

// fitLinearTrend fits y = slope*x + intercept by ordinary least squares with
// x = 0..n-1. ok is false when the system is degenerate.
func fitLinearTrend(ys []float64) (slope, intercept float64, ok bool) {
	n := float64(len(ys))
	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}
	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, 0, false
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept, true
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
