package optimizer

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

// Optimizer fits demand, analyzes the market and searches prices for one item.
// It holds configuration only; every call is a pure function of its inputs.
type Optimizer struct {
	params models.OptimizationParams
	logger zerolog.Logger
}

// NewOptimizer creates a new price optimizer
func NewOptimizer(params models.OptimizationParams, logger zerolog.Logger) (*Optimizer, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid optimization params: %w", err)
	}
	return &Optimizer{
		params: params,
		logger: logger.With().Str("component", "optimizer").Logger(),
	}, nil
}

// Params returns the parameters the optimizer was built with
func (o *Optimizer) Params() models.OptimizationParams {
	return o.params
}

// Evaluation is one candidate price run through the demand function
type Evaluation struct {
	Price   float64
	Sales   float64
	Revenue float64
	Profit  float64
}

// Value returns the objective value of the evaluation
func (e Evaluation) Value(objective models.Objective) float64 {
	if objective == models.ObjectiveRevenue {
		return e.Revenue
	}
	return e.Profit
}

// Input is everything the search and the scenarios need for one item
type Input struct {
	Elasticity          models.ElasticityModel
	Seasonality         models.SeasonalityFactor
	Cost                float64
	CurrentPrice        float64
	BaselineSales       float64 // Q0: current daily units sold
	Objective           models.Objective
	Market              *models.MarketStats
	ConsiderCompetitors bool
}

// Evaluate predicts sales, revenue and profit at price
func (o *Optimizer) Evaluate(in Input, price float64) Evaluation {
	sales := PredictDemand(in.BaselineSales, price, in.CurrentPrice, in.Elasticity.Coefficient, in.Seasonality.Factor)
	return Evaluation{
		Price:   price,
		Sales:   sales,
		Revenue: price * sales,
		Profit:  (price - in.Cost) * sales,
	}
}
