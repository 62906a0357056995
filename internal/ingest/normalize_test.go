package ingest

import (
	"strings"
	"testing"

	"github.com/magazyn-app/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStockSnapshot(t *testing.T) {
	file := strings.Join([]string{
		"Rodzaj,Symbol,Nazwa,Stan,Podstawowy dostawca,Symbol u dostawcy",
		"elektronika,A1,Widget,10,Acme,AC-1",
		"agd,B2,Gadget,5,,",
	}, "\n")

	res, err := Normalize(strings.NewReader(file))
	require.NoError(t, err)

	assert.Equal(t, KindStock, res.Kind)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "A1", res.Rows[0][FieldSKU])
	assert.Equal(t, "10", res.Rows[0][FieldOnHand])
	assert.Equal(t, "Acme", res.Rows[0][FieldSupplierName])
	assert.Equal(t, "AC-1", res.Rows[0][FieldSupplierSKU])
	assert.Equal(t, "elektronika", res.Rows[0][FieldCategory])
	assert.Equal(t, "", res.Rows[1][FieldSupplierName])
}

func TestNormalizeDetectsStockRegardlessOfOtherColumns(t *testing.T) {
	// A quantity-synonym header is present too, but the stock token wins.
	file := "Symbol,STAN,Ilość\nA1,3,9\n"

	res, err := Normalize(strings.NewReader(file))
	require.NoError(t, err)
	assert.Equal(t, KindStock, res.Kind)
}

func TestNormalizeSalesWithDiacriticQuantityHeader(t *testing.T) {
	file := strings.Join([]string{
		"Rodzaj,Symbol,Nazwa,Grupa,Ilość,J.m.",
		"elektronika,A1,Widget,G1,\"12,5\",szt",
	}, "\n")

	res, err := Normalize(strings.NewReader(file))
	require.NoError(t, err)

	assert.Equal(t, KindSales, res.Kind)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "A1", res.Rows[0][FieldSKU])
	assert.Equal(t, "12,5", res.Rows[0][FieldQuantity])
	assert.Equal(t, "szt", res.Rows[0][FieldUnit])
	assert.Equal(t, "G1", res.Rows[0][FieldGroup])
}

func TestNormalizeSalesQuantitySynonymSearch(t *testing.T) {
	// No exact quantity header, but a header containing a synonym token.
	file := "Symbol,Sprzedane sztuki\nA1,20\n"

	res, err := Normalize(strings.NewReader(file))
	require.NoError(t, err)
	assert.Equal(t, KindSales, res.Kind)
	assert.Equal(t, "20", res.Rows[0][FieldQuantity])
}

func TestNormalizeSalesQuantityColumnMissing(t *testing.T) {
	file := "Symbol,Nazwa\nA1,Widget\n"

	_, err := Normalize(strings.NewReader(file))
	require.Error(t, err)

	var schemaErr *domain.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "quantity column not found", schemaErr.Reason)
	assert.Contains(t, schemaErr.AvailableHeaders, "symbol")
}

func TestNormalizeStockMissingSKU(t *testing.T) {
	file := "Nazwa,Stan\nWidget,10\n"

	_, err := Normalize(strings.NewReader(file))

	var schemaErr *domain.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{FieldSKU}, schemaErr.MissingFields)
}

func TestNormalizeEmptyFile(t *testing.T) {
	_, err := Normalize(strings.NewReader(""))

	var schemaErr *domain.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestNormalizePreservesRowOrder(t *testing.T) {
	file := "Symbol,Stan\nC3,1\nA1,2\nB2,3\n"

	res, err := Normalize(strings.NewReader(file))
	require.NoError(t, err)

	got := make([]string, 0, len(res.Rows))
	for _, row := range res.Rows {
		got = append(got, row[FieldSKU])
	}
	assert.Equal(t, []string{"C3", "A1", "B2"}, got)
}

func TestFoldHeader(t *testing.T) {
	assert.Equal(t, "ilosc", foldHeader(" Ilość "))
	assert.Equal(t, "grupa", foldHeader("GRUPA"))
	assert.Equal(t, "lza", foldHeader("łza"))
}
