package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item managed by the seller
type Product struct {
	NmID         int64           `json:"nm_id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	CurrentPrice decimal.Decimal `json:"current_price"` // Current price after discount
	Cost         decimal.Decimal `json:"cost"`
	Size         string          `json:"size,omitempty"`
}

// Validate checks the catalog invariants: cost >= 0, current_price > 0
func (p *Product) Validate() error {
	if p.NmID <= 0 {
		return InvalidInputf("nm_id must be positive, got %d", p.NmID)
	}
	if p.Cost.IsNegative() {
		return InvalidInputf("cost must be non-negative, got %s", p.Cost.String())
	}
	if !p.CurrentPrice.IsPositive() {
		return InvalidInputf("current_price must be positive, got %s", p.CurrentPrice.String())
	}
	return nil
}

// SalesObservation is the units sold of one item on one day at one price
type SalesObservation struct {
	Date      time.Time `json:"date"`
	Price     float64   `json:"price"`
	UnitsSold float64   `json:"units_sold"`
}

// CompetitorListing is an immutable snapshot of a competing listing
type CompetitorListing struct {
	NmID         int64   `json:"nm_id"`
	Name         string  `json:"name,omitempty"`
	Brand        string  `json:"brand"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"` // 0-5
	ReviewsCount int     `json:"reviews_count"`
	SalesPerDay  float64 `json:"sales_per_day"`
	InStock      *bool   `json:"in_stock,omitempty"`
}
