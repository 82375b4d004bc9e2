package models

import "fmt"

// GridParams defines the candidate price grid as fractions of the current price.
// Candidates are current*(1 + k*Step) for every integer k with Lower <= k*Step <= Upper.
type GridParams struct {
	Lower float64 // e.g. -0.20
	Upper float64 // e.g. 0.20
	Step  float64 // e.g. 0.01
}

// OptimizationParams holds parameters for price optimization
type OptimizationParams struct {
	WindowDays         int     // Sales history window used for the elasticity fit
	MinPricePoints     int     // Distinct prices required before the fit is trusted
	BaselineDays       int     // Trailing days averaged into current daily sales
	Grid               GridParams
	MinMarginFactor    float64 // Candidates below cost*MinMarginFactor are discarded
	TopN               int     // Size of the ranked competitor list
	DefaultMinReviews  int
	ConservativeChange float64 // Conservative scenario price change, e.g. -0.05
	AggressiveChange   float64 // Aggressive scenario price change, e.g. 0.10
}

// DefaultOptimizationParams returns the documented defaults
func DefaultOptimizationParams() OptimizationParams {
	return OptimizationParams{
		WindowDays:         90,
		MinPricePoints:     5,
		BaselineDays:       7,
		Grid:               GridParams{Lower: -0.20, Upper: 0.20, Step: 0.01},
		MinMarginFactor:    1.05,
		TopN:               10,
		DefaultMinReviews:  500,
		ConservativeChange: -0.05,
		AggressiveChange:   0.10,
	}
}

// Validate rejects parameter sets the engine cannot run with
func (p OptimizationParams) Validate() error {
	if p.Grid.Step <= 0 {
		return fmt.Errorf("grid step must be positive, got %v", p.Grid.Step)
	}
	if p.Grid.Lower > 0 || p.Grid.Upper < 0 {
		return fmt.Errorf("grid [%v, %v] must contain the current price", p.Grid.Lower, p.Grid.Upper)
	}
	if p.Grid.Lower <= -1 {
		return fmt.Errorf("grid lower bound %v would produce non-positive prices", p.Grid.Lower)
	}
	if p.MinMarginFactor < 1 {
		return fmt.Errorf("min margin factor must be >= 1, got %v", p.MinMarginFactor)
	}
	if p.MinPricePoints < 2 {
		return fmt.Errorf("min price points must be >= 2, got %d", p.MinPricePoints)
	}
	if p.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", p.TopN)
	}
	if p.DefaultMinReviews < 0 {
		return fmt.Errorf("default min reviews must be non-negative, got %d", p.DefaultMinReviews)
	}
	return nil
}
