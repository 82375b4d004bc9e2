package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Objective is the quantity the price search maximizes
type Objective string

const (
	ObjectiveRevenue Objective = "revenue"
	ObjectiveProfit  Objective = "profit"
)

// ParseObjective validates a raw objective name
func ParseObjective(raw string) (Objective, error) {
	switch Objective(strings.ToLower(strings.TrimSpace(raw))) {
	case ObjectiveRevenue:
		return ObjectiveRevenue, nil
	case ObjectiveProfit:
		return ObjectiveProfit, nil
	default:
		return "", InvalidInputf("unknown objective %q: expected revenue or profit", raw)
	}
}

// ElasticityClass buckets the magnitude of the elasticity coefficient
type ElasticityClass string

const (
	ElasticityInelastic ElasticityClass = "inelastic"
	ElasticityModerate  ElasticityClass = "moderate"
	ElasticityElastic   ElasticityClass = "elastic"
)

// ElasticityModel is a fitted price-elasticity estimate
type ElasticityModel struct {
	Coefficient   float64         `json:"coefficient"`
	Confidence    float64         `json:"confidence"` // R² of the log-log fit, 0-1
	IsElastic     bool            `json:"is_elastic"` // |coefficient| > 1
	Class         ElasticityClass `json:"class"`
	DataPoints    int             `json:"data_points"`
	LowConfidence bool            `json:"low_confidence"` // Fallback estimate was used
}

// SeasonalityFactor is a multiplicative demand adjustment for the current period
type SeasonalityFactor struct {
	Factor     float64 `json:"factor"`
	TrendLabel string  `json:"trend_label"`
	Source     string  `json:"source"`
}

// RiskLevel is the qualitative risk attached to a recommended price
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Scenario is a named candidate price evaluated through the demand model
type Scenario struct {
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	PredictedSales   float64         `json:"predicted_sales"`
	PredictedRevenue decimal.Decimal `json:"predicted_revenue"`
	PredictedProfit  decimal.Decimal `json:"predicted_profit"`
	IsRecommended    bool            `json:"is_recommended"`
}

// Warning codes attached to degraded results
const (
	WarningInsufficientHistory = "insufficient_sales_history"
	WarningCompetitorFeedDown  = "competitor_feed_unavailable"
	WarningNoCompetitors       = "no_competitors_found"
	WarningNoFeasibleCandidate = "no_feasible_candidate"
	WarningCachedSalesHistory  = "cached_sales_history"
)

// OptimizationResult is the canonical response of OptimizeProduct
type OptimizationResult struct {
	ID                    uuid.UUID         `json:"id"`
	NmID                  int64             `json:"nm_id"`
	ProductName           string            `json:"product_name"`
	Objective             Objective         `json:"objective"`
	CurrentPrice          decimal.Decimal   `json:"current_price"`
	OptimalPrice          decimal.Decimal   `json:"optimal_price"`
	PriceChangePercent    float64           `json:"price_change_percent"`
	CurrentSales          float64           `json:"current_sales"`
	CurrentProfit         decimal.Decimal   `json:"current_profit"`
	PredictedSales        float64           `json:"predicted_sales"`
	PredictedRevenue      decimal.Decimal   `json:"predicted_revenue"`
	PredictedProfit       decimal.Decimal   `json:"predicted_profit"`
	RiskLevel             RiskLevel         `json:"risk_level"`
	LowConfidence         bool              `json:"low_confidence"`
	Elasticity            ElasticityModel   `json:"elasticity"`
	Seasonality           SeasonalityFactor `json:"seasonality"`
	Market                *MarketStats      `json:"market,omitempty"`
	CompetitorsConsidered bool              `json:"competitors_considered"`
	Scenarios             []Scenario        `json:"scenarios"`
	RecommendationText    string            `json:"recommendation_text"`
	Warnings              []string          `json:"warnings,omitempty"`
	OptimizedAt           time.Time         `json:"optimized_at"`
}

// RecommendedScenario returns the single scenario flagged as recommended
func (r *OptimizationResult) RecommendedScenario() (Scenario, error) {
	for _, s := range r.Scenarios {
		if s.IsRecommended {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("no recommended scenario in result %s", r.ID)
}
