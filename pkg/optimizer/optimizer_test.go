package optimizer

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

// testOptimizerSetup is a helper struct to hold test dependencies
type testOptimizerSetup struct {
	optimizer *Optimizer
	params    models.OptimizationParams
}

// setupTestOptimizer creates a test optimizer with default parameters
func setupTestOptimizer(t *testing.T) *testOptimizerSetup {
	params := models.DefaultOptimizationParams()

	optimizer, err := NewOptimizer(params, zerolog.Nop())
	require.NoError(t, err)

	return &testOptimizerSetup{
		optimizer: optimizer,
		params:    params,
	}
}

// referenceInput is the worked example: cost 500, price 1000, e=-1.2, Q0=10
func referenceInput(objective models.Objective) Input {
	return Input{
		Elasticity:    models.ElasticityModel{Coefficient: -1.2, Confidence: 0.8, Class: models.ElasticityModerate},
		Seasonality:   models.SeasonalityFactor{Factor: 1.0, TrendLabel: "stable", Source: SeasonalitySourceDefault},
		Cost:          500,
		CurrentPrice:  1000,
		BaselineSales: 10,
		Objective:     objective,
	}
}

// TestNewOptimizer tests optimizer creation
func TestNewOptimizer(t *testing.T) {
	setup := setupTestOptimizer(t)
	assert.NotNil(t, setup.optimizer)
	assert.Equal(t, setup.params, setup.optimizer.Params())
}

// TestNewOptimizer_InvalidParams tests that broken grids are rejected up front
func TestNewOptimizer_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *models.OptimizationParams)
	}{
		{"zero step", func(p *models.OptimizationParams) { p.Grid.Step = 0 }},
		{"grid above current", func(p *models.OptimizationParams) { p.Grid.Lower = 0.05 }},
		{"grid below current", func(p *models.OptimizationParams) { p.Grid.Upper = -0.05 }},
		{"margin factor below one", func(p *models.OptimizationParams) { p.MinMarginFactor = 0.9 }},
		{"single price point", func(p *models.OptimizationParams) { p.MinPricePoints = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := models.DefaultOptimizationParams()
			tt.mutate(&params)

			opt, err := NewOptimizer(params, zerolog.Nop())

			assert.Error(t, err)
			assert.Nil(t, opt)
			assert.Contains(t, err.Error(), "invalid optimization params")
		})
	}
}

// TestEvaluate tests revenue and profit at a candidate price
func TestEvaluate(t *testing.T) {
	setup := setupTestOptimizer(t)
	in := referenceInput(models.ObjectiveProfit)

	eval := setup.optimizer.Evaluate(in, 1100)

	assert.Equal(t, 1100.0, eval.Price)
	assert.InDelta(t, 8.919, eval.Sales, 0.001)
	assert.InDelta(t, 1100*eval.Sales, eval.Revenue, 1e-9)
	assert.InDelta(t, 600*eval.Sales, eval.Profit, 1e-9)
	assert.Equal(t, eval.Profit, eval.Value(models.ObjectiveProfit))
	assert.Equal(t, eval.Revenue, eval.Value(models.ObjectiveRevenue))
}
