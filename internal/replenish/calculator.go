package replenish

import (
	"math"

	"github.com/magazyn-app/backend-go/internal/domain"
)

// SafetyFactor is the fixed 20% buffer applied to demand before comparing
// against on-hand stock.
const SafetyFactor = 1.2

// Calculator converts aggregated demand and current stock into reorder
// quantities per horizon.
type Calculator struct {
	safetyFactor float64
}

func NewCalculator() *Calculator {
	return &Calculator{safetyFactor: SafetyFactor}
}

// ReorderQty returns max(0, round(demand * safetyFactor - onHand)).
// Rounding is half away from zero (math.Round); the result is floored at
// zero so a surplus never produces a negative recommendation.
func (c *Calculator) ReorderQty(demand float64, onHand int) int {
	qty := math.Round(demand*c.safetyFactor - float64(onHand))

	return int(math.Max(0, qty))
}

// Orders computes the three per-horizon reorder quantities for one SKU.
func (c *Calculator) Orders(d domain.DemandSummary, onHand int) (order30d, order3m, order12m int) {
	order30d = c.ReorderQty(float64(d.Rolling30D), onHand)
	order3m = c.ReorderQty(d.Trailing3MAvg, onHand)
	order12m = c.ReorderQty(d.Trailing12MAvg, onHand)

	return order30d, order3m, order12m
}
