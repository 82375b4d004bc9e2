package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
	"github.com/cypherlabdev/price-optimizer-service/internal/service"
)

// PricingHandler handles HTTP requests for price optimization
type PricingHandler struct {
	service           service.PriceOptimizer
	defaultMinReviews int
	logger            zerolog.Logger
}

// NewPricingHandler creates a new pricing HTTP handler
func NewPricingHandler(svc service.PriceOptimizer, defaultMinReviews int, logger zerolog.Logger) *PricingHandler {
	return &PricingHandler{
		service:           svc,
		defaultMinReviews: defaultMinReviews,
		logger:            logger.With().Str("component", "pricing_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided mux
func (h *PricingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/products/{nm_id}/optimize", h.handleOptimize)
	mux.HandleFunc("GET /api/v1/products/{nm_id}/competitors", h.handleCompetitors)
	mux.HandleFunc("GET /api/v1/products/{nm_id}/recommendation", h.handleRecommendation)
}

// handleOptimize handles GET /api/v1/products/{nm_id}/optimize?objective=&consider_competitors=
func (h *PricingHandler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	nmID, ok := h.nmID(w, r)
	if !ok {
		return
	}

	objective, err := models.ParseObjective(queryOr(r, "objective", string(models.ObjectiveProfit)))
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	considerCompetitors := true
	if raw := r.URL.Query().Get("consider_competitors"); raw != "" {
		considerCompetitors, err = strconv.ParseBool(raw)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, "consider_competitors must be true or false")
			return
		}
	}

	result, err := h.service.OptimizeProduct(r.Context(), nmID, objective, considerCompetitors)
	if err != nil {
		h.serviceError(w, err, nmID)
		return
	}

	h.jsonResponse(w, http.StatusOK, result)
}

// handleCompetitors handles GET /api/v1/products/{nm_id}/competitors?min_reviews=
func (h *PricingHandler) handleCompetitors(w http.ResponseWriter, r *http.Request) {
	nmID, ok := h.nmID(w, r)
	if !ok {
		return
	}

	minReviews := h.defaultMinReviews
	if raw := r.URL.Query().Get("min_reviews"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, "min_reviews must be an integer")
			return
		}
		minReviews = v
	}

	report, err := h.service.AnalyzeCompetitors(r.Context(), nmID, minReviews)
	if err != nil {
		h.serviceError(w, err, nmID)
		return
	}

	h.jsonResponse(w, http.StatusOK, report)
}

// handleRecommendation handles GET /api/v1/products/{nm_id}/recommendation?objective=
func (h *PricingHandler) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	nmID, ok := h.nmID(w, r)
	if !ok {
		return
	}

	objective, err := models.ParseObjective(queryOr(r, "objective", string(models.ObjectiveProfit)))
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.GetLatestRecommendation(r.Context(), nmID, objective)
	if err != nil {
		h.serviceError(w, err, nmID)
		return
	}

	h.jsonResponse(w, http.StatusOK, result)
}

func (h *PricingHandler) nmID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	nmID, err := strconv.ParseInt(r.PathValue("nm_id"), 10, 64)
	if err != nil || nmID <= 0 {
		h.errorResponse(w, http.StatusBadRequest, "nm_id must be a positive integer")
		return 0, false
	}
	return nmID, true
}

func queryOr(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}

// serviceError maps the error taxonomy onto HTTP status codes
func (h *PricingHandler) serviceError(w http.ResponseWriter, err error, nmID int64) {
	status := statusFor(err)
	event := h.logger.Warn()
	if status >= http.StatusInternalServerError {
		event = h.logger.Error()
	}
	event.Err(err).Int64("nm_id", nmID).Int("status", status).Msg("request failed")

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	h.errorResponse(w, status, message)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrExternalService):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// jsonResponse writes a JSON response
func (h *PricingHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *PricingHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}
