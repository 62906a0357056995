// internal/reconcile/reconciler.go
package reconcile

import (
	"context"
	"strings"
	"time"

	"github.com/magazyn-app/backend-go/internal/domain"
	"github.com/magazyn-app/backend-go/internal/ingest"
	"github.com/magazyn-app/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// Reconciler applies normalized upload rows to the persistent store. Rows
// with a blank SKU are skipped silently; per-row problems are collected as
// RowErrors without aborting the batch; the surviving rows are written in a
// single commit.
type Reconciler struct {
	stock repository.StockRepository
	sales repository.SalesRepository
}

func NewReconciler(stock repository.StockRepository, sales repository.SalesRepository) *Reconciler {
	return &Reconciler{stock: stock, sales: sales}
}

// ApplyStock upserts one stock snapshot batch keyed by SKU. Every mapped
// field is overwritten, absent fields default to empty string / zero, so
// re-uploading the same file is idempotent. The commit error, if any, is
// returned alongside the result with Committed=false.
func (r *Reconciler) ApplyStock(ctx context.Context, rows []ingest.Row) (domain.ReconcileResult, error) {
	result := domain.ReconcileResult{}
	records := make([]domain.StockRecord, 0, len(rows))

	for i, row := range rows {
		sku := strings.TrimSpace(row[ingest.FieldSKU])
		if sku == "" {
			result.Skipped++
			continue
		}

		rec, err := buildStockRecord(sku, row)
		if err != nil {
			result.RowErrors = append(result.RowErrors, domain.RowError{Row: i + 1, Message: err.Error()})
			log.Error().Err(err).Int("row", i+1).Msg("failed to build stock record")
			continue
		}

		records = append(records, rec)
		result.Processed++
	}

	if err := r.stock.UpsertBatch(ctx, records); err != nil {
		log.Error().Err(err).Int("rows", len(records)).Msg("stock batch commit failed")
		return result, err
	}
	result.Committed = true

	return result, nil
}

// ApplySales appends one sales batch. The period type is fixed for the whole
// batch from the upload's declared intent and stored on every row.
func (r *Reconciler) ApplySales(ctx context.Context, rows []ingest.Row, period domain.PeriodType, now time.Time) (domain.ReconcileResult, error) {
	result := domain.ReconcileResult{}
	records := make([]domain.SalesRecord, 0, len(rows))

	for _, row := range rows {
		sku := strings.TrimSpace(row[ingest.FieldSKU])
		if sku == "" {
			result.Skipped++
			continue
		}

		unit := strings.TrimSpace(row[ingest.FieldUnit])
		if unit == "" {
			unit = "pcs"
		}

		records = append(records, domain.SalesRecord{
			SKU:        sku,
			Category:   strings.TrimSpace(row[ingest.FieldCategory]),
			Name:       strings.TrimSpace(row[ingest.FieldName]),
			Group:      strings.TrimSpace(row[ingest.FieldGroup]),
			Quantity:   ingest.CoerceInt(row[ingest.FieldQuantity], 0),
			Unit:       unit,
			RecordDate: now,
			PeriodType: period,
		})
		result.Processed++
	}

	if err := r.sales.InsertBatch(ctx, records); err != nil {
		log.Error().Err(err).Int("rows", len(records)).Msg("sales batch commit failed")
		return result, err
	}
	result.Committed = true

	return result, nil
}

func buildStockRecord(sku string, row ingest.Row) (domain.StockRecord, error) {
	return domain.StockRecord{
		SKU:          sku,
		Category:     strings.TrimSpace(row[ingest.FieldCategory]),
		Name:         strings.TrimSpace(row[ingest.FieldName]),
		OnHand:       ingest.CoerceInt(row[ingest.FieldOnHand], 0),
		SupplierName: strings.TrimSpace(row[ingest.FieldSupplierName]),
		SupplierSKU:  strings.TrimSpace(row[ingest.FieldSupplierSKU]),
	}, nil
}
