// internal/demand/aggregator.go
package demand

import (
	"context"
	"fmt"
	"time"

	"github.com/magazyn-app/backend-go/internal/domain"
	"github.com/magazyn-app/backend-go/internal/repository"
)

// trailingWindow is the cutoff for the 3-month horizon.
const trailingWindow = 90 * 24 * time.Hour

// Aggregator sums sales demand per SKU over the three reporting horizons.
type Aggregator struct {
	sales repository.SalesRepository
}

func NewAggregator(sales repository.SalesRepository) *Aggregator {
	return &Aggregator{sales: sales}
}

// Demand computes the per-horizon demand for one SKU as of now.
//
// The rolling 30-day figure sums every ROLLING_30D row with no date filter:
// the period type itself declares "this batch covers the last 30 days". The
// 3-month average sums CALENDAR_MONTH rows dated within the last 90 days and
// divides by 3; the 12-month average sums all CALENDAR_MONTH rows and divides
// by 12. The divisors are fixed assumptions (3 monthly uploads = a quarter,
// 12 = a year) and are applied whether or not that many months were actually
// uploaded; MonthsObserved tells callers how much data backs the averages.
func (a *Aggregator) Demand(ctx context.Context, sku string, now time.Time) (domain.DemandSummary, error) {
	var summary domain.DemandSummary

	rolling, err := a.sales.SumQuantity(ctx, sku, domain.PeriodRolling30D, nil)
	if err != nil {
		return summary, fmt.Errorf("rolling 30d sum for %s: %w", sku, err)
	}

	since := now.Add(-trailingWindow)
	sum3m, err := a.sales.SumQuantity(ctx, sku, domain.PeriodCalendarMonth, &since)
	if err != nil {
		return summary, fmt.Errorf("trailing 3m sum for %s: %w", sku, err)
	}

	sum12m, err := a.sales.SumQuantity(ctx, sku, domain.PeriodCalendarMonth, nil)
	if err != nil {
		return summary, fmt.Errorf("trailing 12m sum for %s: %w", sku, err)
	}

	months, err := a.sales.CountDistinctMonths(ctx, sku)
	if err != nil {
		return summary, fmt.Errorf("months observed for %s: %w", sku, err)
	}

	summary.Rolling30D = rolling
	summary.Trailing3MAvg = float64(sum3m) / 3.0
	summary.Trailing12MAvg = float64(sum12m) / 12.0
	summary.MonthsObserved = months

	return summary, nil
}
