package optimizer

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

const basisPoints = 10000

// GridPrices enumerates candidate prices around current.
// Steps are computed in basis points so the grid is exact and reproducible:
// candidate k is current*(1 + k*step) rounded to cents, and k=0 is current itself.
func GridPrices(grid models.GridParams, current float64) []float64 {
	step := toBasisPoints(grid.Step)
	if step <= 0 || current <= 0 {
		return []float64{current}
	}
	kMin := int64(math.Ceil(float64(toBasisPoints(grid.Lower)) / float64(step)))
	kMax := int64(math.Floor(float64(toBasisPoints(grid.Upper)) / float64(step)))
	if kMax < kMin {
		return []float64{current}
	}

	prices := make([]float64, 0, kMax-kMin+1)
	for k := kMin; k <= kMax; k++ {
		var p float64
		if k == 0 {
			p = current
		} else {
			p = PriceAtChange(current, float64(k*step)/basisPoints)
		}
		if p <= 0 {
			continue
		}
		if n := len(prices); n > 0 && prices[n-1] == p {
			continue
		}
		prices = append(prices, p)
	}
	return prices
}

// PriceAtChange returns current*(1+change) rounded to cents
func PriceAtChange(current, change float64) float64 {
	mult := decimal.New(basisPoints+toBasisPoints(change), -4)
	return decimal.NewFromFloat(current).Mul(mult).Round(2).InexactFloat64()
}

func toBasisPoints(f float64) int64 {
	return int64(math.Round(f * basisPoints))
}
