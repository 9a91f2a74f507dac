package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finsight/internal/services"
)

// InsightsHandler handles spending statistics and forecast requests.
type InsightsHandler struct {
	insightsService services.InsightsServicer
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(insightsService services.InsightsServicer) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService}
}

// Summary returns whole-ledger spending statistics
// @Summary     Spending summary
// @Description Total spending, average transaction and record count over all expenses
// @Tags        insights
// @Produce     json
// @Success     200 {object} services.SummaryResult "Summary statistics"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/summary [get]
func (h *InsightsHandler) Summary(c *gin.Context) {
	summary, err := h.insightsService.Summary()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// SpendingByCategory returns per-category totals
// @Summary     Spending by category
// @Description Total spending grouped by category
// @Tags        insights
// @Produce     json
// @Success     200 {object} map[string]float64 "Category totals"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/spending_by_category [get]
func (h *InsightsHandler) SpendingByCategory(c *gin.Context) {
	totals, err := h.insightsService.SpendingByCategory()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

// MonthlySpending returns per-month totals in chronological order
// @Summary     Monthly spending
// @Description Total spending grouped by calendar month, keys "YYYY-MM" in chronological order
// @Tags        insights
// @Produce     json
// @Success     200 {object} map[string]float64 "Monthly totals"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/monthly_spending [get]
func (h *InsightsHandler) MonthlySpending(c *gin.Context) {
	totals, err := h.insightsService.MonthlySpending()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

// ForecastNextMonth projects next month's total spending
// @Summary     Forecast next month
// @Description Projected total spending for the next month with the model used
// @Tags        predict
// @Produce     json
// @Success     200 {object} services.ForecastResult "Forecast"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /predict/next_month_total [get]
func (h *InsightsHandler) ForecastNextMonth(c *gin.Context) {
	forecast, err := h.insightsService.ForecastNextMonth()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, forecast)
}
