package seasonality

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
	"github.com/cypherlabdev/price-optimizer-service/pkg/optimizer"
)

// Table is a static seasonal index keyed by category and month
type Table struct {
	factors map[string]map[time.Month]float64
	logger  zerolog.Logger
}

// NewTable builds a table from category -> month -> factor.
// Months are "1".."12" or English month names; categories are case-insensitive.
func NewTable(raw map[string]map[string]float64, logger zerolog.Logger) (*Table, error) {
	factors := make(map[string]map[time.Month]float64, len(raw))
	for category, months := range raw {
		byMonth := make(map[time.Month]float64, len(months))
		for key, factor := range months {
			month, err := parseMonth(key)
			if err != nil {
				return nil, fmt.Errorf("seasonality %q: %w", category, err)
			}
			if factor <= 0 {
				return nil, models.InvalidInputf("seasonality %q month %s: factor must be positive, got %v", category, key, factor)
			}
			byMonth[month] = factor
		}
		factors[normalize(category)] = byMonth
	}

	return &Table{
		factors: factors,
		logger:  logger.With().Str("component", "seasonality").Logger(),
	}, nil
}

// Index implements optimizer.SeasonalIndex
func (t *Table) Index(category string, month time.Month) (float64, bool) {
	months, ok := t.factors[normalize(category)]
	if !ok {
		return 0, false
	}
	f, ok := months[month]
	return f, ok
}

// Lookup returns the factor for (category, month), neutral when unknown
func (t *Table) Lookup(category string, month time.Month) models.SeasonalityFactor {
	factor := optimizer.EstimateSeasonality(t, category, month)
	if factor.Source == optimizer.SeasonalitySourceDefault {
		t.logger.Debug().
			Str("category", category).
			Str("month", month.String()).
			Msg("no seasonal index, using neutral factor")
	}
	return factor
}

func normalize(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

func parseMonth(key string) (time.Month, error) {
	key = strings.TrimSpace(key)
	if n, err := strconv.Atoi(key); err == nil {
		if n < 1 || n > 12 {
			return 0, models.InvalidInputf("month %d out of range", n)
		}
		return time.Month(n), nil
	}
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if strings.EqualFold(key, name) || strings.EqualFold(key, name[:3]) {
			return m, nil
		}
	}
	return 0, models.InvalidInputf("unknown month %q", key)
}
