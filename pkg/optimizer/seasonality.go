package optimizer

import (
	"math"
	"time"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

// Seasonality sources
const (
	SeasonalitySourceDefault = "default"
	SeasonalitySourceTable   = "table"
)

// SeasonalIndex is a historical seasonal index keyed by category and month
type SeasonalIndex interface {
	Index(category string, month time.Month) (float64, bool)
}

// EstimateSeasonality returns the indexed factor for (category, month),
// or the neutral factor 1.0 when the index is absent or has no usable entry.
func EstimateSeasonality(index SeasonalIndex, category string, month time.Month) models.SeasonalityFactor {
	if index != nil {
		if f, ok := index.Index(category, month); ok && f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return models.SeasonalityFactor{
				Factor:     f,
				TrendLabel: TrendLabel(f),
				Source:     SeasonalitySourceTable,
			}
		}
	}
	return models.SeasonalityFactor{
		Factor:     1.0,
		TrendLabel: TrendLabel(1.0),
		Source:     SeasonalitySourceDefault,
	}
}

// TrendLabel names the demand trend implied by a seasonal factor
func TrendLabel(factor float64) string {
	switch {
	case factor >= 1.15:
		return "high_demand"
	case factor >= 1.05:
		return "rising"
	case factor >= 0.95:
		return "stable"
	case factor >= 0.85:
		return "declining"
	default:
		return "low_season"
	}
}
