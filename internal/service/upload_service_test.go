package service

import (
	"context"
	"testing"
	"time"

	"github.com/magazyn-app/backend-go/internal/demand"
	"github.com/magazyn-app/backend-go/internal/domain"
	"github.com/magazyn-app/backend-go/internal/ingest"
	"github.com/magazyn-app/backend-go/internal/reconcile"
	"github.com/magazyn-app/backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploadFixture() (*UploadService, *memory.Store) {
	store := memory.NewStore()
	uploads := NewUploadService(reconcile.NewReconciler(store, store), nil, nil)
	return uploads, store
}

func TestProcessUploadStockFile(t *testing.T) {
	uploads, store := newUploadFixture()

	csvData := []byte("Rodzaj,Symbol,Nazwa,Stan,Podstawowy dostawca\nelektronika,A1,Widget,10,Acme\n")
	outcome, err := uploads.ProcessUpload(context.Background(), "stan.csv", csvData, "")
	require.NoError(t, err)

	assert.Equal(t, ingest.KindStock, outcome.Kind)
	assert.True(t, outcome.Result.Committed)
	assert.Equal(t, 1, outcome.Result.Processed)
	assert.Empty(t, outcome.Warning)

	records, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Acme", records[0].SupplierName)
}

func TestProcessUploadSalesFileUsesDeclaredPeriod(t *testing.T) {
	uploads, store := newUploadFixture()

	csvData := []byte("Symbol,Ilość\nA1,20\n")
	outcome, err := uploads.ProcessUpload(context.Background(), "sprzedaz.csv", csvData, domain.PeriodRolling30D)
	require.NoError(t, err)

	assert.Equal(t, ingest.KindSales, outcome.Kind)
	total, err := store.SumQuantity(context.Background(), "A1", domain.PeriodRolling30D, nil)
	require.NoError(t, err)
	assert.Equal(t, 20, total)
}

func TestProcessUploadRejectsBrokenSchema(t *testing.T) {
	uploads, store := newUploadFixture()

	csvData := []byte("Symbol,Nazwa\nA1,Widget\n")
	_, err := uploads.ProcessUpload(context.Background(), "bad.csv", csvData, domain.PeriodCalendarMonth)

	var schemaErr *domain.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, 0, store.SalesCount(), "nothing may be persisted on schema rejection")
}

func TestUploadThenReportScenario(t *testing.T) {
	uploads, store := newUploadFixture()
	ctx := context.Background()
	now := time.Now()

	stock := []byte("Symbol,Stan,Podstawowy dostawca\nA1,10,\nB1,1,Acme\n")
	_, err := uploads.ProcessUpload(ctx, "stan.csv", stock, "")
	require.NoError(t, err)

	sales := []byte("Symbol,Ilość\nA1,20\n")
	_, err = uploads.ProcessUpload(ctx, "sprzedaz.csv", sales, domain.PeriodRolling30D)
	require.NoError(t, err)

	reports := NewReportService(store, demand.NewAggregator(store), nil)
	rows, err := reports.BuildReport(ctx, now)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Supplied SKU first, then the one with the sentinel.
	assert.Equal(t, "B1", rows[0].SKU)
	assert.Equal(t, "Acme", rows[0].Supplier)
	assert.Equal(t, "A1", rows[1].SKU)
	assert.Equal(t, domain.NoSupplier, rows[1].Supplier)
	assert.Equal(t, 14, rows[1].Order30D)
	assert.Equal(t, 0, rows[1].Order3M)
	assert.Equal(t, 0, rows[1].Order12M)
}
