package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cypherlabdev/price-optimizer-service/internal/mocks"
	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

// testHandlerSetup is a helper struct to hold test dependencies
type testHandlerSetup struct {
	service *mocks.MockPriceOptimizer
	mux     *http.ServeMux
}

func setupTestHandler(t *testing.T) *testHandlerSetup {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockPriceOptimizer(ctrl)

	mux := http.NewServeMux()
	NewPricingHandler(svc, 500, zerolog.Nop()).RegisterRoutes(mux)

	return &testHandlerSetup{service: svc, mux: mux}
}

func (s *testHandlerSetup) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

// TestOptimize_Success tests query parsing and the JSON body
func TestOptimize_Success(t *testing.T) {
	setup := setupTestHandler(t)
	setup.service.EXPECT().
		OptimizeProduct(gomock.Any(), int64(42), models.ObjectiveRevenue, false).
		Return(&models.OptimizationResult{
			NmID:         42,
			Objective:    models.ObjectiveRevenue,
			OptimalPrice: decimal.RequireFromString("1149.99"),
			RiskLevel:    models.RiskMedium,
		}, nil)

	rec := setup.get("/api/v1/products/42/optimize?objective=revenue&consider_competitors=false")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body models.OptimizationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.NmID)
	assert.True(t, body.OptimalPrice.Equal(decimal.RequireFromString("1149.99")))
	assert.Equal(t, models.RiskMedium, body.RiskLevel)
}

// TestOptimize_Defaults tests profit with competitors is the default request
func TestOptimize_Defaults(t *testing.T) {
	setup := setupTestHandler(t)
	setup.service.EXPECT().
		OptimizeProduct(gomock.Any(), int64(42), models.ObjectiveProfit, true).
		Return(&models.OptimizationResult{NmID: 42}, nil)

	rec := setup.get("/api/v1/products/42/optimize")

	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestOptimize_BadRequests tests validation before the service is called
func TestOptimize_BadRequests(t *testing.T) {
	setup := setupTestHandler(t)

	paths := []string{
		"/api/v1/products/abc/optimize",
		"/api/v1/products/-3/optimize",
		"/api/v1/products/42/optimize?objective=margin",
		"/api/v1/products/42/optimize?consider_competitors=maybe",
	}

	for _, path := range paths {
		rec := setup.get(path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.NotEmpty(t, decodeError(t, rec), path)
	}
}

// TestOptimize_ErrorMapping tests the error taxonomy to status mapping
func TestOptimize_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", models.ProductNotFound(42), http.StatusNotFound},
		{"invalid input", models.InvalidInputf("bad"), http.StatusBadRequest},
		{"insufficient data", fmt.Errorf("%w: history: %w", models.ErrInsufficientData, models.ErrExternalService), http.StatusUnprocessableEntity},
		{"external service", fmt.Errorf("%w: redis", models.ErrExternalService), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup := setupTestHandler(t)
			setup.service.EXPECT().
				OptimizeProduct(gomock.Any(), int64(42), models.ObjectiveProfit, true).
				Return(nil, tt.err)

			rec := setup.get("/api/v1/products/42/optimize")

			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, decodeError(t, rec))
		})
	}
}

// TestOptimize_InternalErrorHidesDetails tests that unknown errors aren't leaked
func TestOptimize_InternalErrorHidesDetails(t *testing.T) {
	setup := setupTestHandler(t)
	setup.service.EXPECT().
		OptimizeProduct(gomock.Any(), int64(42), models.ObjectiveProfit, true).
		Return(nil, errors.New("pq: password authentication failed"))

	rec := setup.get("/api/v1/products/42/optimize")

	assert.Equal(t, "internal error", decodeError(t, rec))
}

// TestCompetitors tests min_reviews parsing and the default threshold
func TestCompetitors(t *testing.T) {
	setup := setupTestHandler(t)
	setup.service.EXPECT().
		AnalyzeCompetitors(gomock.Any(), int64(42), 500).
		Return(&models.CompetitorReport{Found: false, Message: "no competitors found"}, nil)
	setup.service.EXPECT().
		AnalyzeCompetitors(gomock.Any(), int64(42), 50).
		Return(&models.CompetitorReport{Found: true, MarketStats: &models.MarketStats{Min: 900}}, nil)

	rec := setup.get("/api/v1/products/42/competitors")
	require.Equal(t, http.StatusOK, rec.Code)
	var empty models.CompetitorReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &empty))
	assert.False(t, empty.Found)
	assert.Equal(t, "no competitors found", empty.Message)

	rec = setup.get("/api/v1/products/42/competitors?min_reviews=50")
	require.Equal(t, http.StatusOK, rec.Code)
	var found models.CompetitorReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	assert.True(t, found.Found)
	assert.Equal(t, 900.0, found.MarketStats.Min)

	rec = setup.get("/api/v1/products/42/competitors?min_reviews=many")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestRecommendation tests the cached result route
func TestRecommendation(t *testing.T) {
	setup := setupTestHandler(t)
	setup.service.EXPECT().
		GetLatestRecommendation(gomock.Any(), int64(42), models.ObjectiveRevenue).
		Return(nil, fmt.Errorf("no recommendation: %w", models.ErrNotFound))

	rec := setup.get("/api/v1/products/42/recommendation?objective=revenue")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestMethodNotAllowed tests that only GET is routed
func TestMethodNotAllowed(t *testing.T) {
	setup := setupTestHandler(t)

	rec := httptest.NewRecorder()
	setup.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/products/42/optimize", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
