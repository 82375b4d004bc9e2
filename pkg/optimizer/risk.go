package optimizer

import (
	"fmt"
	"math"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

// ClassifyRisk labels a recommendation from model confidence and the size of the move
func ClassifyRisk(confidence, priceChangePercent float64) models.RiskLevel {
	change := math.Abs(priceChangePercent)
	switch {
	case confidence < 0.3 || change > 15:
		return models.RiskHigh
	case confidence >= 0.7 && change <= 5:
		return models.RiskLow
	default:
		return models.RiskMedium
	}
}

// PriceChangePercent is the signed move from current to target in percent
func PriceChangePercent(current, target float64) float64 {
	if current == 0 {
		return 0
	}
	return (target - current) / current * 100
}

// RecommendationText explains the recommendation in one or two sentences
func RecommendationText(elasticity models.ElasticityModel, current, optimal float64, risk models.RiskLevel, fallback bool) string {
	if fallback {
		return fmt.Sprintf("Keep the current price of %.2f: no candidate price satisfies the margin and market constraints.", current)
	}

	change := PriceChangePercent(current, optimal)
	var action string
	switch {
	case optimal < current:
		action = fmt.Sprintf("Lower the price from %.2f to %.2f (%.1f%%).", current, optimal, change)
	case optimal > current:
		action = fmt.Sprintf("Raise the price from %.2f to %.2f (+%.1f%%).", current, optimal, change)
	default:
		action = fmt.Sprintf("Keep the current price of %.2f.", current)
	}

	var demand string
	switch {
	case elasticity.LowConfidence:
		demand = "Sales history has too little price variation for a reliable fit, so unit elasticity was assumed."
	case elasticity.Class == models.ElasticityElastic:
		demand = fmt.Sprintf("Demand is highly elastic (coefficient %.2f): volume reacts strongly to price.", elasticity.Coefficient)
	case elasticity.Class == models.ElasticityModerate:
		demand = fmt.Sprintf("Demand is moderately elastic (coefficient %.2f).", elasticity.Coefficient)
	default:
		demand = fmt.Sprintf("Demand is inelastic (coefficient %.2f): price changes barely move volume.", elasticity.Coefficient)
	}

	text := action + " " + demand
	if risk == models.RiskHigh {
		text += " Risk is high; change the price gradually and monitor daily sales."
	}
	return text
}
