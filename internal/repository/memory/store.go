// internal/repository/memory/store.go
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/magazyn-app/backend-go/internal/domain"
)

// Store is an in-memory implementation of the stock and sales repositories.
// It backs the service tests and the CLI's dry-run mode. Batches commit
// all-or-nothing, matching the postgres transaction semantics.
type Store struct {
	mu     sync.RWMutex
	stock  map[string]domain.StockRecord
	sales  []domain.SalesRecord
	nextID int64

	// CommitErr, when set, makes every write batch fail without applying
	// anything. Used to exercise rollback paths in tests.
	CommitErr error
}

func NewStore() *Store {
	return &Store{stock: make(map[string]domain.StockRecord)}
}

func (s *Store) UpsertBatch(ctx context.Context, records []domain.StockRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CommitErr != nil {
		return s.CommitErr
	}

	now := time.Now()
	for _, rec := range records {
		if existing, ok := s.stock[rec.SKU]; ok {
			rec.ID = existing.ID
			rec.CreatedAt = existing.CreatedAt
		} else {
			s.nextID++
			rec.ID = s.nextID
			rec.CreatedAt = now
		}
		rec.UpdatedAt = now
		s.stock[rec.SKU] = rec
	}

	return nil
}

func (s *Store) ListAll(ctx context.Context) ([]domain.StockRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.StockRecord, 0, len(s.stock))
	for _, rec := range s.stock {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].SKU < records[j].SKU })

	return records, nil
}

func (s *Store) InsertBatch(ctx context.Context, records []domain.SalesRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CommitErr != nil {
		return s.CommitErr
	}

	now := time.Now()
	for _, rec := range records {
		s.nextID++
		rec.ID = s.nextID
		rec.CreatedAt = now
		s.sales = append(s.sales, rec)
	}

	return nil
}

func (s *Store) SumQuantity(ctx context.Context, sku string, period domain.PeriodType, since *time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, rec := range s.sales {
		if rec.SKU != sku || rec.PeriodType != period {
			continue
		}
		if since != nil && rec.RecordDate.Before(*since) {
			continue
		}
		total += rec.Quantity
	}

	return total, nil
}

func (s *Store) CountDistinctMonths(ctx context.Context, sku string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	months := make(map[string]struct{})
	for _, rec := range s.sales {
		if rec.SKU != sku || rec.PeriodType != domain.PeriodCalendarMonth {
			continue
		}
		months[rec.RecordDate.Format("2006-01")] = struct{}{}
	}

	return len(months), nil
}

// SalesCount returns the number of stored sales rows.
func (s *Store) SalesCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sales)
}
