package integration

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"finsight/internal/config"
	"finsight/internal/handlers"
	"finsight/internal/ledger"
	"finsight/internal/logger"
	"finsight/internal/middleware"
	"finsight/internal/services"
	"finsight/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	Store  *ledger.Store
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by a ledger file in a
// fresh temporary directory.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("DATA_FILE", filepath.Join(dir, "expenses.csv"))
	t.Setenv("UPLOAD_DIR", dir)
	if _, err := config.Load(); err != nil {
		t.Fatalf("failed to load configuration: %v", err)
	}

	store := ledger.NewStore(filepath.Join(dir, "expenses.csv"))

	// Services
	expenseService := services.NewExpenseService(store)
	insightsService := services.NewInsightsService(store)

	// Handlers
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	insightsHandler := handlers.NewInsightsHandler(insightsService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	api := router.Group("/api")

	expenses := api.Group("/expenses")
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.POST("/upload_csv", expenseHandler.UploadCSV)

	insights := api.Group("/insights")
	insights.GET("/summary", insightsHandler.Summary)
	insights.GET("/spending_by_category", insightsHandler.SpendingByCategory)
	insights.GET("/monthly_spending", insightsHandler.MonthlySpending)

	predict := api.Group("/predict")
	predict.GET("/next_month_total", insightsHandler.ForecastNextMonth)

	return &testApp{Store: store, Router: router}
}

// request makes a JSON HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// upload makes a multipart CSV upload request to the test router.
func (app *testApp) upload(t *testing.T, fileName, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
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

	req := httptest.NewRequest(http.MethodPost, "/api/expenses/upload_csv", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// addExpense records a single expense through the API and fails the test on a
// non-201 response.
func (app *testApp) addExpense(t *testing.T, date, category string, amount float64) {
	t.Helper()
	body, _ := json.Marshal(map[string]interface{}{
		"date":     date,
		"category": category,
		"amount":   amount,
	})
	rec := app.request("POST", "/api/expenses", string(body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 recording expense, got %d: %s", rec.Code, rec.Body.String())
	}
}
