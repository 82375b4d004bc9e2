package optimizer

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

func listing(nmID int64, price float64, reviews int, salesPerDay float64) models.CompetitorListing {
	return models.CompetitorListing{
		NmID:         nmID,
		Brand:        "brand",
		Price:        price,
		Rating:       4.5,
		ReviewsCount: reviews,
		SalesPerDay:  salesPerDay,
	}
}

// TestAnalyzeCompetitors_Stats tests min/max/mean/median and our percentile
func TestAnalyzeCompetitors_Stats(t *testing.T) {
	setup := setupTestOptimizer(t)
	listings := []models.CompetitorListing{
		listing(1, 800, 600, 5),
		listing(2, 900, 700, 5),
		listing(3, 1000, 800, 5),
		listing(4, 1200, 900, 5),
		listing(5, 500, 10, 5), // Below review threshold
	}

	analysis := setup.optimizer.AnalyzeCompetitors(listings, 500, 99, 950)

	require.True(t, analysis.Found)
	require.NotNil(t, analysis.Stats)
	assert.Equal(t, 800.0, analysis.Stats.Min)
	assert.Equal(t, 1200.0, analysis.Stats.Max)
	assert.Equal(t, 975.0, analysis.Stats.Mean)
	assert.Equal(t, 950.0, analysis.Stats.Median)
	assert.Equal(t, 50, analysis.Stats.OurPercentile) // 1000 and 1200 are at or above 950
	assert.Equal(t, 4, analysis.Stats.Competitors)

	require.NotNil(t, analysis.Position)
	assert.Equal(t, 2, analysis.Position.CheaperCompetitors)
	assert.Equal(t, 2, analysis.Position.PricierCompetitors)
	assert.Equal(t, "above_median", analysis.Position.Label)
	assert.Equal(t, 902.5, analysis.Position.OptimalLow)
	assert.Equal(t, 997.5, analysis.Position.OptimalHigh)
	assert.Equal(t, 0.0, analysis.Position.VsMedianPercent)
}

// TestAnalyzeCompetitors_OddMedian tests the middle element for odd sets
func TestAnalyzeCompetitors_OddMedian(t *testing.T) {
	setup := setupTestOptimizer(t)
	listings := []models.CompetitorListing{
		listing(1, 300, 600, 1),
		listing(2, 100, 600, 1),
		listing(3, 200, 600, 1),
	}

	analysis := setup.optimizer.AnalyzeCompetitors(listings, 0, 99, 50)

	require.True(t, analysis.Found)
	assert.Equal(t, 200.0, analysis.Stats.Median)
	assert.Equal(t, 100, analysis.Stats.OurPercentile)
	assert.Equal(t, "very_low", analysis.Position.Label)
}

// TestAnalyzeCompetitors_PercentileBounds tests the [0,100] range on extremes
func TestAnalyzeCompetitors_PercentileBounds(t *testing.T) {
	setup := setupTestOptimizer(t)
	listings := []models.CompetitorListing{
		listing(1, 100, 600, 1),
		listing(2, 110, 600, 1),
		listing(3, 120, 600, 1),
	}

	for _, ourPrice := range []float64{0.01, 100, 115, 120, 1e9} {
		analysis := setup.optimizer.AnalyzeCompetitors(listings, 500, 99, ourPrice)
		require.True(t, analysis.Found)
		assert.GreaterOrEqual(t, analysis.Stats.OurPercentile, 0)
		assert.LessOrEqual(t, analysis.Stats.OurPercentile, 100)
	}

	cheapest := setup.optimizer.AnalyzeCompetitors(listings, 500, 99, 1)
	assert.Equal(t, 100, cheapest.Stats.OurPercentile)
	priciest := setup.optimizer.AnalyzeCompetitors(listings, 500, 99, 1000)
	assert.Equal(t, 0, priciest.Stats.OurPercentile)
	assert.Equal(t, "high", priciest.Position.Label)
}

// TestAnalyzeCompetitors_Empty tests the explicit no-competitors result
func TestAnalyzeCompetitors_Empty(t *testing.T) {
	setup := setupTestOptimizer(t)
	listings := []models.CompetitorListing{
		listing(1, 800, 10, 5),
		listing(2, 900, 20, 5),
	}

	analysis := setup.optimizer.AnalyzeCompetitors(listings, 500, 99, 950)

	assert.False(t, analysis.Found)
	assert.Equal(t, NoCompetitorsMessage, analysis.Message)
	assert.Nil(t, analysis.Stats)
	assert.Nil(t, analysis.Position)
	assert.NotNil(t, analysis.Top)
	assert.Empty(t, analysis.Top)

	none := setup.optimizer.AnalyzeCompetitors(nil, 0, 99, 950)
	assert.False(t, none.Found)
}

// TestAnalyzeCompetitors_ExcludesOwnListing tests that our item and unpriced listings are skipped
func TestAnalyzeCompetitors_ExcludesOwnListing(t *testing.T) {
	setup := setupTestOptimizer(t)
	listings := []models.CompetitorListing{
		listing(99, 950, 5000, 50),
		listing(1, 0, 5000, 50),
		listing(2, 1000, 600, 5),
	}

	analysis := setup.optimizer.AnalyzeCompetitors(listings, 500, 99, 950)

	require.True(t, analysis.Found)
	assert.Equal(t, 1, analysis.Stats.Competitors)
	require.Len(t, analysis.Top, 1)
	assert.Equal(t, int64(2), analysis.Top[0].NmID)
}

// TestAnalyzeCompetitors_Ranking tests reviews desc, sales desc, nm_id asc ordering
func TestAnalyzeCompetitors_Ranking(t *testing.T) {
	setup := setupTestOptimizer(t)
	listings := []models.CompetitorListing{
		listing(30, 100, 1000, 5),
		listing(10, 100, 1000, 5),
		listing(20, 100, 1000, 9),
		listing(40, 100, 2000, 1),
		listing(50, 100, 700, 50),
	}

	analysis := setup.optimizer.AnalyzeCompetitors(listings, 500, 99, 100)

	require.Len(t, analysis.Top, 5)
	var order []int64
	for _, c := range analysis.Top {
		order = append(order, c.NmID)
	}
	assert.Equal(t, []int64{40, 20, 10, 30, 50}, order)
}

// TestAnalyzeCompetitors_TopN tests truncation of the ranked list
func TestAnalyzeCompetitors_TopN(t *testing.T) {
	params := models.DefaultOptimizationParams()
	params.TopN = 3
	opt, err := NewOptimizer(params, zerolog.Nop())
	require.NoError(t, err)

	listings := make([]models.CompetitorListing, 0, 8)
	for i := 1; i <= 8; i++ {
		listings = append(listings, listing(int64(i), 100, 500+i, 1))
	}

	analysis := opt.AnalyzeCompetitors(listings, 500, 99, 100)

	require.Len(t, analysis.Top, 3)
	assert.Equal(t, int64(8), analysis.Top[0].NmID)
	assert.Equal(t, 8, analysis.Stats.Competitors)
}
