// internal/repository/postgres/stock_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magazyn-app/backend-go/internal/domain"
)

type stockRepository struct {
	db *DB
}

func NewStockRepository(db *DB) *stockRepository {
	return &stockRepository{db: db}
}

// UpsertBatch writes the whole batch in one transaction. Records are keyed by
// SKU; every mapped field is overwritten on conflict.
func (r *stockRepository) UpsertBatch(ctx context.Context, records []domain.StockRecord) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO stock_records (
				sku, category, name, on_hand, supplier_name, supplier_sku, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			ON CONFLICT (sku)
			DO UPDATE SET
				category = EXCLUDED.category,
				name = EXCLUDED.name,
				on_hand = EXCLUDED.on_hand,
				supplier_name = EXCLUDED.supplier_name,
				supplier_sku = EXCLUDED.supplier_sku,
				updated_at = NOW()
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
				rec.OnHand,
				rec.SupplierName,
				rec.SupplierSKU,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert stock record %s: %w", rec.SKU, err)
			}
		}

		return nil
	})
}

// ListAll returns every stock record. The report iterates the full table, so
// no pagination is applied here.
func (r *stockRepository) ListAll(ctx context.Context) ([]domain.StockRecord, error) {
	query := `
		SELECT id, sku, category, name, on_hand, supplier_name, supplier_sku, created_at, updated_at
		FROM stock_records
		ORDER BY sku
	`

	var records []domain.StockRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to list stock records: %w", err)
	}

	return records, nil
}
