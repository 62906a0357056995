// internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/magazyn-app/backend-go/internal/domain"
)

// StockRepository is the persistence contract for the stock snapshot table:
// unique-key upsert by SKU and full iteration for report generation.
type StockRepository interface {
	// UpsertBatch writes all records in a single transaction. Existing
	// records with the same SKU are overwritten field by field; the batch
	// either commits as a whole or not at all.
	UpsertBatch(ctx context.Context, records []domain.StockRecord) error
	ListAll(ctx context.Context) ([]domain.StockRecord, error)
}

// SalesRepository is the persistence contract for the append-only sales
// table, including the aggregate queries the demand horizons need.
type SalesRepository interface {
	// InsertBatch appends all records in a single transaction.
	InsertBatch(ctx context.Context, records []domain.SalesRecord) error
	// SumQuantity sums quantity for a SKU filtered by period type and,
	// when since is non-nil, by record_date >= since.
	SumQuantity(ctx context.Context, sku string, period domain.PeriodType, since *time.Time) (int, error)
	// CountDistinctMonths counts distinct calendar months with
	// CALENDAR_MONTH sales rows for a SKU.
	CountDistinctMonths(ctx context.Context, sku string) (int, error)
}
