package optimizer

import (
	"math"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

// SearchResult is the outcome of the grid search
type SearchResult struct {
	Optimum    Evaluation
	Candidates []Evaluation // Feasible candidates in ascending price order
	Rejected   int          // Candidates discarded by margin or market constraints
	Fallback   bool         // No candidate survived; Optimum is the current price
}

// Search picks the grid price maximizing the objective.
// Candidates below cost*MinMarginFactor are discarded, and when competitors are
// considered so are candidates outside [market.Min, market.Max]. Exact ties go
// to the price closest to current, then to the lower price.
func (o *Optimizer) Search(in Input) SearchResult {
	minPrice := in.Cost * o.params.MinMarginFactor
	bounded := in.ConsiderCompetitors && in.Market != nil && in.Market.Competitors > 0

	var result SearchResult
	found := false
	for _, price := range GridPrices(o.params.Grid, in.CurrentPrice) {
		if price < minPrice {
			result.Rejected++
			continue
		}
		if bounded && (price < in.Market.Min || price > in.Market.Max) {
			result.Rejected++
			continue
		}

		eval := o.Evaluate(in, price)
		result.Candidates = append(result.Candidates, eval)
		if !found || better(eval, result.Optimum, in.Objective, in.CurrentPrice) {
			result.Optimum = eval
			found = true
		}
	}

	if !found {
		o.logger.Warn().
			Float64("current_price", in.CurrentPrice).
			Float64("min_price", minPrice).
			Bool("market_bounded", bounded).
			Msg("no candidate price satisfies constraints, keeping current price")
		result.Optimum = o.Evaluate(in, in.CurrentPrice)
		result.Fallback = true
	}

	return result
}

func better(candidate, best Evaluation, objective models.Objective, current float64) bool {
	cv, bv := candidate.Value(objective), best.Value(objective)
	if cv != bv {
		return cv > bv
	}
	cd, bd := math.Abs(candidate.Price-current), math.Abs(best.Price-current)
	if cd != bd {
		return cd < bd
	}
	return candidate.Price < best.Price
}
