package optimizer

import (
	"math"
	"sort"
	"time"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

// Fallback estimate used when the history cannot support a fit: unit elastic
const fallbackCoefficient = -1.0

// PredictDemand projects daily units at price:
// Q(P) = Q0 * (P / current)^coefficient * factor, floored at 0.
// At the current price this is Q0*factor, which equals Q0 only for a neutral season.
func PredictDemand(baseline, price, current, coefficient, factor float64) float64 {
	if price <= 0 || current <= 0 {
		return 0
	}
	q := baseline * math.Pow(price/current, coefficient) * factor
	if q < 0 || math.IsNaN(q) {
		return 0
	}
	return q
}

// ClassifyElasticity buckets |coefficient| at the exact boundaries 0.5 and 1.5
func ClassifyElasticity(coefficient float64) models.ElasticityClass {
	a := math.Abs(coefficient)
	switch {
	case a < 0.5:
		return models.ElasticityInelastic
	case a < 1.5:
		return models.ElasticityModerate
	default:
		return models.ElasticityElastic
	}
}

// FitElasticity regresses ln(units) on ln(price) over the configured window.
// Too few distinct prices yields the unit-elastic fallback with zero confidence.
func (o *Optimizer) FitElasticity(observations []models.SalesObservation) models.ElasticityModel {
	points := o.window(aggregateDaily(observations))

	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points))
	distinct := make(map[float64]struct{})
	for _, p := range points {
		if p.Price <= 0 || p.UnitsSold <= 0 {
			continue
		}
		xs = append(xs, math.Log(p.Price))
		ys = append(ys, math.Log(p.UnitsSold))
		distinct[p.Price] = struct{}{}
	}

	if len(distinct) < o.params.MinPricePoints {
		o.logger.Debug().
			Int("distinct_prices", len(distinct)).
			Int("required", o.params.MinPricePoints).
			Msg("not enough price variation, using fallback elasticity")
		return fallbackElasticity(len(xs))
	}

	slope, r2, ok := logLogFit(xs, ys)
	if !ok {
		return fallbackElasticity(len(xs))
	}

	model := models.ElasticityModel{
		Coefficient: slope,
		Confidence:  clamp(r2, 0, 1),
		IsElastic:   math.Abs(slope) > 1,
		Class:       ClassifyElasticity(slope),
		DataPoints:  len(xs),
	}

	o.logger.Debug().
		Float64("coefficient", model.Coefficient).
		Float64("confidence", model.Confidence).
		Int("data_points", model.DataPoints).
		Msg("fitted price elasticity")

	return model
}

// BaselineDemand is the mean daily units over the trailing BaselineDays
func (o *Optimizer) BaselineDemand(observations []models.SalesObservation) float64 {
	points := aggregateDaily(observations)
	if len(points) == 0 {
		return 0
	}
	if n := o.params.BaselineDays; n > 0 && len(points) > n {
		points = points[len(points)-n:]
	}
	var total float64
	for _, p := range points {
		total += p.UnitsSold
	}
	return total / float64(len(points))
}

func fallbackElasticity(dataPoints int) models.ElasticityModel {
	return models.ElasticityModel{
		Coefficient:   fallbackCoefficient,
		Confidence:    0,
		IsElastic:     false,
		Class:         ClassifyElasticity(fallbackCoefficient),
		DataPoints:    dataPoints,
		LowConfidence: true,
	}
}

// logLogFit returns the OLS slope of ys on xs and the R² of the fit
func logLogFit(xs, ys []float64) (slope, r2 float64, ok bool) {
	n := float64(len(xs))
	if n < 2 {
		return 0, 0, false
	}
	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= n
	my /= n

	var sxx, sxy, syy float64
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}
	if sxx == 0 {
		return 0, 0, false
	}
	slope = sxy / sxx
	if syy == 0 {
		// Flat demand: slope is exactly zero and the fit explains nothing
		return slope, 0, true
	}
	return slope, (sxy * sxy) / (sxx * syy), true
}

// aggregateDaily sums duplicate days and orders by date.
// The day's price is the units-weighted mean of its observations.
func aggregateDaily(observations []models.SalesObservation) []models.SalesObservation {
	type bucket struct {
		day        time.Time
		units      float64
		priceUnits float64
		priceSum   float64
		count      int
	}
	buckets := make(map[time.Time]*bucket)
	for _, obs := range observations {
		y, m, d := obs.Date.UTC().Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{day: day}
			buckets[day] = b
		}
		b.units += obs.UnitsSold
		b.priceUnits += obs.Price * obs.UnitsSold
		b.priceSum += obs.Price
		b.count++
	}

	out := make([]models.SalesObservation, 0, len(buckets))
	for _, b := range buckets {
		price := b.priceSum / float64(b.count)
		if b.units > 0 && b.priceUnits > 0 {
			price = b.priceUnits / b.units
		}
		out = append(out, models.SalesObservation{Date: b.day, Price: price, UnitsSold: b.units})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// window keeps points within WindowDays of the latest observation
func (o *Optimizer) window(points []models.SalesObservation) []models.SalesObservation {
	if o.params.WindowDays <= 0 || len(points) == 0 {
		return points
	}
	cutoff := points[len(points)-1].Date.AddDate(0, 0, -o.params.WindowDays)
	i := sort.Search(len(points), func(i int) bool { return points[i].Date.After(cutoff) })
	return points[i:]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
