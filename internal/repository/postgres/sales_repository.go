// internal/repository/postgres/sales_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magazyn-app/backend-go/internal/domain"
)

type salesRepository struct {
	db *DB
}

func NewSalesRepository(db *DB) *salesRepository {
	return &salesRepository{db: db}
}

// InsertBatch appends the whole batch in one transaction. Sales rows are
// never updated or deleted afterwards.
func (r *salesRepository) InsertBatch(ctx context.Context, records []domain.SalesRecord) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO sales_records (
				sku, category, name, group_name, quantity, unit, record_date, period_type, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, rec := range records {
			_, err := stmt.ExecContext(
				ctx,
				rec.SKU,
				rec.Category,
				rec.Name,
				rec.Group,
				rec.Quantity,
				rec.Unit,
				rec.RecordDate,
				rec.PeriodType,
			)
			if err != nil {
				return fmt.Errorf("failed to insert sales record %s: %w", rec.SKU, err)
			}
		}

		return nil
	})
}

func (r *salesRepository) SumQuantity(ctx context.Context, sku string, period domain.PeriodType, since *time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM sales_records
		WHERE sku = $1 AND period_type = $2
	`
	args := []interface{}{sku, period}
	if since != nil {
		query += ` AND record_date >= $3`
		args = append(args, *since)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("failed to sum sales for %s: %w", sku, err)
	}

	return total, nil
}

func (r *salesRepository) CountDistinctMonths(ctx context.Context, sku string) (int, error) {
	query := `
		SELECT COUNT(DISTINCT date_trunc('month', record_date))
		FROM sales_records
		WHERE sku = $1 AND period_type = $2
	`

	var count int
	if err := r.db.GetContext(ctx, &count, query, sku, domain.PeriodCalendarMonth); err != nil {
		return 0, fmt.Errorf("failed to count sales months for %s: %w", sku, err)
	}

	return count, nil
}
