package optimizer

import (
	"math"
	"sort"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

// NoCompetitorsMessage marks the explicit empty competitor result
const NoCompetitorsMessage = "no competitors found"

// AnalyzeCompetitors filters listings by review count and summarizes their prices.
// An empty filtered set is reported through Found=false, never as an error.
func (o *Optimizer) AnalyzeCompetitors(
	listings []models.CompetitorListing,
	minReviews int,
	ourNmID int64,
	ourPrice float64,
) models.CompetitorAnalysis {
	filtered := make([]models.CompetitorListing, 0, len(listings))
	for _, l := range listings {
		if l.NmID == ourNmID || l.Price <= 0 {
			continue
		}
		if l.ReviewsCount < minReviews {
			continue
		}
		filtered = append(filtered, l)
	}

	if len(filtered) == 0 {
		o.logger.Debug().
			Int64("nm_id", ourNmID).
			Int("raw_listings", len(listings)).
			Int("min_reviews", minReviews).
			Msg("no qualifying competitors")
		return models.CompetitorAnalysis{
			Found:   false,
			Message: NoCompetitorsMessage,
			Top:     []models.CompetitorListing{},
		}
	}

	stats := marketStats(filtered, ourPrice)
	position := pricePosition(filtered, stats, ourPrice)

	return models.CompetitorAnalysis{
		Found:    true,
		Stats:    &stats,
		Position: &position,
		Top:      rankCompetitors(filtered, o.params.TopN),
	}
}

func marketStats(listings []models.CompetitorListing, ourPrice float64) models.MarketStats {
	prices := make([]float64, len(listings))
	var sum float64
	atOrAbove := 0
	for i, l := range listings {
		prices[i] = l.Price
		sum += l.Price
		if l.Price >= ourPrice {
			atOrAbove++
		}
	}
	sort.Float64s(prices)

	n := len(prices)
	median := prices[n/2]
	if n%2 == 0 {
		median = (prices[n/2-1] + prices[n/2]) / 2
	}

	percentile := int(math.Round(float64(atOrAbove) / float64(n) * 100))
	if percentile < 0 {
		percentile = 0
	}
	if percentile > 100 {
		percentile = 100
	}

	return models.MarketStats{
		Min:           prices[0],
		Max:           prices[n-1],
		Mean:          round(sum/float64(n), 2),
		Median:        round(median, 2),
		OurPercentile: percentile,
		Competitors:   n,
	}
}

func pricePosition(listings []models.CompetitorListing, stats models.MarketStats, ourPrice float64) models.PricePosition {
	cheaper, pricier := 0, 0
	for _, l := range listings {
		switch {
		case l.Price < ourPrice:
			cheaper++
		case l.Price > ourPrice:
			pricier++
		}
	}

	share := float64(cheaper) / float64(len(listings)) * 100
	var label string
	switch {
	case share < 25:
		label = "very_low"
	case share < 50:
		label = "below_median"
	case share < 75:
		label = "above_median"
	default:
		label = "high"
	}

	return models.PricePosition{
		Label:              label,
		CheaperCompetitors: cheaper,
		PricierCompetitors: pricier,
		VsMinPercent:       percentDiff(ourPrice, stats.Min),
		VsMeanPercent:      percentDiff(ourPrice, stats.Mean),
		VsMedianPercent:    percentDiff(ourPrice, stats.Median),
		VsMaxPercent:       percentDiff(ourPrice, stats.Max),
		OptimalLow:         round(stats.Median*0.95, 2),
		OptimalHigh:        round(stats.Median*1.05, 2),
	}
}

// rankCompetitors orders by reviews desc, sales per day desc, nm_id asc
func rankCompetitors(listings []models.CompetitorListing, topN int) []models.CompetitorListing {
	ranked := make([]models.CompetitorListing, len(listings))
	copy(ranked, listings)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.ReviewsCount != b.ReviewsCount {
			return a.ReviewsCount > b.ReviewsCount
		}
		if a.SalesPerDay != b.SalesPerDay {
			return a.SalesPerDay > b.SalesPerDay
		}
		return a.NmID < b.NmID
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

func percentDiff(ours, theirs float64) float64 {
	if theirs == 0 {
		return 0
	}
	return round((ours-theirs)/theirs*100, 1)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
