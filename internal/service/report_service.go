// internal/service/report_service.go
package service

import (
	"context"
	"sort"
	"time"

	"github.com/magazyn-app/backend-go/internal/cache"
	"github.com/magazyn-app/backend-go/internal/demand"
	"github.com/magazyn-app/backend-go/internal/domain"
	"github.com/magazyn-app/backend-go/internal/replenish"
	"github.com/magazyn-app/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// ReportService assembles the replenishment report: every stock record is
// joined with its per-horizon demand and reorder quantities.
type ReportService struct {
	stock      repository.StockRepository
	aggregator *demand.Aggregator
	calculator *replenish.Calculator
	cache      cache.ReportCache
}

func NewReportService(stock repository.StockRepository, aggregator *demand.Aggregator, cacheImpl cache.ReportCache) *ReportService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &ReportService{
		stock:      stock,
		aggregator: aggregator,
		calculator: replenish.NewCalculator(),
		cache:      cacheImpl,
	}
}

// BuildReport computes the report as of now over the FULL stock table. A
// per-SKU computation failure drops that row and the report continues;
// rows without a supplier get the sentinel and sort after supplied ones.
func (s *ReportService) BuildReport(ctx context.Context, now time.Time) ([]domain.ReportRow, error) {
	if rows, ok, err := s.cache.Get(ctx, now); err == nil && ok {
		return rows, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("report cache get failed")
	}

	records, err := s.stock.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ReportRow, 0, len(records))
	for _, rec := range records {
		summary, err := s.aggregator.Demand(ctx, rec.SKU, now)
		if err != nil {
			log.Error().Err(err).Str("sku", rec.SKU).Msg("failed to compute demand, dropping row")
			continue
		}

		supplier := rec.SupplierName
		if supplier == "" {
			supplier = domain.NoSupplier
		}

		order30d, order3m, order12m := s.calculator.Orders(summary, rec.OnHand)
		rows = append(rows, domain.ReportRow{
			SKU:      rec.SKU,
			Category: rec.Category,
			Name:     rec.Name,
			OnHand:   rec.OnHand,
			Supplier: supplier,
			Order30D: order30d,
			Order3M:  order3m,
			Order12M: order12m,
		})
	}

	// Supplied SKUs first, then alphabetical within each group.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].HasSupplier() != rows[j].HasSupplier() {
			return rows[i].HasSupplier()
		}
		return rows[i].SKU < rows[j].SKU
	})

	if err := s.cache.Set(ctx, now, rows); err != nil {
		log.Warn().Err(err).Msg("report cache set failed")
	}

	return rows, nil
}
