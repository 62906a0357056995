package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/magazyn-app/backend-go/internal/domain"
	"github.com/magazyn-app/backend-go/internal/ingest"
	"github.com/magazyn-app/backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stockRow(sku, onHand, supplier string) ingest.Row {
	return ingest.Row{
		ingest.FieldSKU:          sku,
		ingest.FieldOnHand:       onHand,
		ingest.FieldSupplierName: supplier,
	}
}

func TestApplyStockInsertsAndOverwrites(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	rec := NewReconciler(store, store)

	result, err := rec.ApplyStock(ctx, []ingest.Row{stockRow("A1", "10", "Acme")})
	require.NoError(t, err)
	assert.True(t, result.Committed)
	assert.Equal(t, 1, result.Processed)

	// Second upload for the same SKU overwrites every mapped field; absent
	// fields reset to their defaults.
	result, err = rec.ApplyStock(ctx, []ingest.Row{{
		ingest.FieldSKU:    "A1",
		ingest.FieldOnHand: "3",
	}})
	require.NoError(t, err)
	assert.True(t, result.Committed)

	records, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].OnHand)
	assert.Equal(t, "", records[0].SupplierName)
}

func TestApplyStockIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	rec := NewReconciler(store, store)
	rows := []ingest.Row{stockRow("A1", "10", "Acme"), stockRow("B2", "5", "")}

	_, err := rec.ApplyStock(ctx, rows)
	require.NoError(t, err)
	first, err := store.ListAll(ctx)
	require.NoError(t, err)

	_, err = rec.ApplyStock(ctx, rows)
	require.NoError(t, err)
	second, err := store.ListAll(ctx)
	require.NoError(t, err)

	require.Len(t, second, 2)
	for i := range first {
		assert.Equal(t, first[i].SKU, second[i].SKU)
		assert.Equal(t, first[i].OnHand, second[i].OnHand)
		assert.Equal(t, first[i].SupplierName, second[i].SupplierName)
	}
}

func TestApplyStockSkipsBlankSKU(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	rec := NewReconciler(store, store)

	result, err := rec.ApplyStock(ctx, []ingest.Row{
		stockRow("  ", "10", ""),
		stockRow("A1", "4", ""),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.RowErrors)

	records, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestApplyStockCommitFailure(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.CommitErr = errors.New("connection reset")
	rec := NewReconciler(store, store)

	result, err := rec.ApplyStock(ctx, []ingest.Row{stockRow("A1", "10", "")})
	require.Error(t, err)
	assert.False(t, result.Committed)

	store.CommitErr = nil
	records, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records, "nothing may survive a failed commit")
}

func TestApplySalesIsAppendOnly(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	rec := NewReconciler(store, store)
	now := time.Now()
	rows := []ingest.Row{
		{ingest.FieldSKU: "A1", ingest.FieldQuantity: "20"},
		{ingest.FieldSKU: "A1", ingest.FieldQuantity: "5"},
	}

	_, err := rec.ApplySales(ctx, rows, domain.PeriodRolling30D, now)
	require.NoError(t, err)
	assert.Equal(t, 2, store.SalesCount())

	// Re-uploading the same file doubles the row count by design.
	_, err = rec.ApplySales(ctx, rows, domain.PeriodRolling30D, now)
	require.NoError(t, err)
	assert.Equal(t, 4, store.SalesCount())

	total, err := store.SumQuantity(ctx, "A1", domain.PeriodRolling30D, nil)
	require.NoError(t, err)
	assert.Equal(t, 50, total)
}

func TestApplySalesUnparseableQuantityDefaultsToZero(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	rec := NewReconciler(store, store)

	rows := []ingest.Row{
		{ingest.FieldSKU: "A1", ingest.FieldQuantity: "1"},
		{ingest.FieldSKU: "A2", ingest.FieldQuantity: "2"},
		{ingest.FieldSKU: "A3", ingest.FieldQuantity: "oops"},
		{ingest.FieldSKU: "A4", ingest.FieldQuantity: "4"},
		{ingest.FieldSKU: "A5", ingest.FieldQuantity: "5"},
	}

	result, err := rec.ApplySales(ctx, rows, domain.PeriodCalendarMonth, time.Now())
	require.NoError(t, err)

	// Coercion never raises: all 5 rows are stored, the bad quantity is 0.
	assert.Equal(t, 5, result.Processed)
	assert.Empty(t, result.RowErrors)
	assert.Equal(t, 5, store.SalesCount())

	total, err := store.SumQuantity(ctx, "A3", domain.PeriodCalendarMonth, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestApplySalesFixesPeriodTypeAndUnitDefault(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	rec := NewReconciler(store, store)

	_, err := rec.ApplySales(ctx, []ingest.Row{
		{ingest.FieldSKU: "A1", ingest.FieldQuantity: "7"},
	}, domain.PeriodCalendarMonth, time.Now())
	require.NoError(t, err)

	r30, err := store.SumQuantity(ctx, "A1", domain.PeriodRolling30D, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, r30, "batch period type must not leak into the other horizon")

	month, err := store.SumQuantity(ctx, "A1", domain.PeriodCalendarMonth, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, month)
}
