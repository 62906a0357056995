package replenish

import (
	"testing"

	"github.com/magazyn-app/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestReorderQty(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name   string
		demand float64
		onHand int
		want   int
	}{
		{"buffered demand above stock", 20, 10, 14}, // round(20*1.2 - 10)
		{"zero demand never negative", 0, 100, 0},
		{"exact cover", 10, 12, 0},
		{"fractional demand rounds half away from zero", 12.5, 10, 5}, // 12.5*1.2 = 15.0
		{"rounding boundary", 9.58333, 10, 1},                         // 11.4999... - 10 = 1.4999 -> 1
		{"no stock", 10, 0, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.ReorderQty(tt.demand, tt.onHand))
		})
	}
}

func TestOrdersComputesAllHorizons(t *testing.T) {
	calc := NewCalculator()
	summary := domain.DemandSummary{
		Rolling30D:     20,
		Trailing3MAvg:  0,
		Trailing12MAvg: 0,
	}

	o30, o3, o12 := calc.Orders(summary, 10)
	assert.Equal(t, 14, o30)
	assert.Equal(t, 0, o3)
	assert.Equal(t, 0, o12)
}
