// internal/domain/models.go
package domain

import "time"

// NoSupplier is the sentinel shown for stock items without an assigned supplier.
const NoSupplier = "NO SUPPLIER"

// StockRecord is the current warehouse snapshot for a single SKU.
// There is at most one record per SKU; stock uploads overwrite it in place.
type StockRecord struct {
	ID           int64     `json:"id" db:"id"`
	SKU          string    `json:"sku" db:"sku"`
	Category     string    `json:"category" db:"category"`
	Name         string    `json:"name" db:"name"`
	OnHand       int       `json:"on_hand" db:"on_hand"`
	SupplierName string    `json:"supplier_name" db:"supplier_name"`
	SupplierSKU  string    `json:"supplier_sku" db:"supplier_sku"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// SalesRecord is one row from a sales upload. Sales are append-only:
// re-uploading the same file stores a second, independent batch.
type SalesRecord struct {
	ID         int64      `json:"id" db:"id"`
	SKU        string     `json:"sku" db:"sku"`
	Category   string     `json:"category" db:"category"`
	Name       string     `json:"name" db:"name"`
	Group      string     `json:"group" db:"group_name"`
	Quantity   int        `json:"quantity" db:"quantity"`
	Unit       string     `json:"unit" db:"unit"`
	RecordDate time.Time  `json:"record_date" db:"record_date"`
	PeriodType PeriodType `json:"period_type" db:"period_type"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// DemandSummary holds aggregated sales demand for one SKU over the three
// reporting horizons.
type DemandSummary struct {
	Rolling30D     int     `json:"rolling_30d"`
	Trailing3MAvg  float64 `json:"trailing_3m_avg"`
	Trailing12MAvg float64 `json:"trailing_12m_avg"`
	// MonthsObserved counts distinct calendar months with sales data for the
	// SKU. The horizon averages always divide by the fixed 3/12 constants;
	// this is informational only.
	MonthsObserved int `json:"months_observed"`
}

// ReportRow is one line of the replenishment report.
type ReportRow struct {
	SKU      string `json:"sku"`
	Category string `json:"category"`
	Name     string `json:"name"`
	OnHand   int    `json:"on_hand"`
	Supplier string `json:"supplier"`
	Order30D int    `json:"order_30d"`
	Order3M  int    `json:"order_3m"`
	Order12M int    `json:"order_12m"`
}

// HasSupplier reports whether the row has a real supplier assigned.
func (r ReportRow) HasSupplier() bool {
	return r.Supplier != NoSupplier
}
