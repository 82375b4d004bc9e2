package optimizer

import (
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

// Scenario names
const (
	ScenarioCurrent      = "current"
	ScenarioConservative = "conservative"
	ScenarioAggressive   = "aggressive"
	ScenarioOptimal      = "optimal"
	ScenarioCompetitive  = "competitive"
)

// GenerateScenarios evaluates the fixed scenario set through the same demand
// function as the search. Only the optimal scenario is recommended.
func (o *Optimizer) GenerateScenarios(in Input, optimum Evaluation) []models.Scenario {
	scenarios := []models.Scenario{
		toScenario(ScenarioCurrent, o.Evaluate(in, in.CurrentPrice), false),
		toScenario(ScenarioConservative, o.Evaluate(in, PriceAtChange(in.CurrentPrice, o.params.ConservativeChange)), false),
		toScenario(ScenarioAggressive, o.Evaluate(in, PriceAtChange(in.CurrentPrice, o.params.AggressiveChange)), false),
		toScenario(ScenarioOptimal, optimum, true),
	}

	if in.Market != nil && in.Market.Mean > 0 {
		// Slightly under the average competitor
		price := decimal.NewFromFloat(in.Market.Mean).Mul(decimal.NewFromFloat(0.95)).Round(2).InexactFloat64()
		scenarios = append(scenarios, toScenario(ScenarioCompetitive, o.Evaluate(in, price), false))
	}

	return scenarios
}

func toScenario(name string, eval Evaluation, recommended bool) models.Scenario {
	return models.Scenario{
		Name:             name,
		Price:            Money(eval.Price),
		PredictedSales:   round(eval.Sales, 2),
		PredictedRevenue: Money(eval.Revenue),
		PredictedProfit:  Money(eval.Profit),
		IsRecommended:    recommended,
	}
}

// Money converts an engine amount to a cent-rounded decimal
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
