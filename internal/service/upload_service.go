// internal/service/upload_service.go
package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/magazyn-app/backend-go/internal/cache"
	"github.com/magazyn-app/backend-go/internal/domain"
	"github.com/magazyn-app/backend-go/internal/ingest"
	"github.com/magazyn-app/backend-go/internal/reconcile"
	"github.com/magazyn-app/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
)

// UploadOutcome is returned to the handler after one file has been processed.
type UploadOutcome struct {
	Kind    ingest.FileKind        `json:"kind"`
	Result  domain.ReconcileResult `json:"result"`
	Warning string                 `json:"warning,omitempty"`
}

// UploadService runs the ingest path: archive the raw bytes, normalize the
// CSV, reconcile against the store and invalidate the report cache.
type UploadService struct {
	reconciler *reconcile.Reconciler
	archive    storage.ObjectStorage
	cache      cache.ReportCache
	now        func() time.Time
}

func NewUploadService(reconciler *reconcile.Reconciler, archive storage.ObjectStorage, cacheImpl cache.ReportCache) *UploadService {
	if archive == nil {
		archive = storage.Noop{}
	}
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &UploadService{
		reconciler: reconciler,
		archive:    archive,
		cache:      cacheImpl,
		now:        time.Now,
	}
}

// ProcessUpload ingests one uploaded CSV file. The file kind is detected from
// the header row: a stock snapshot upserts the stock table, a sales batch is
// appended with the caller-declared period type. Schema problems reject the
// whole file; per-row problems are reported in the outcome without aborting
// the batch.
func (s *UploadService) ProcessUpload(ctx context.Context, filename string, data []byte, period domain.PeriodType) (*UploadOutcome, error) {
	s.archiveUpload(ctx, filename, data)

	normalized, err := ingest.Normalize(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var result domain.ReconcileResult
	switch normalized.Kind {
	case ingest.KindStock:
		result, err = s.reconciler.ApplyStock(ctx, normalized.Rows)
	case ingest.KindSales:
		if !period.Valid() {
			period = domain.PeriodCalendarMonth
		}
		result, err = s.reconciler.ApplySales(ctx, normalized.Rows, period, s.now())
	default:
		return nil, fmt.Errorf("unknown file kind %q", normalized.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to apply %s batch: %w", normalized.Kind, err)
	}

	if result.Committed {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate report cache")
		}
	}

	log.Info().
		Str("filename", filename).
		Str("kind", string(normalized.Kind)).
		Int("processed", result.Processed).
		Int("skipped", result.Skipped).
		Int("row_errors", len(result.RowErrors)).
		Msg("upload processed")

	return &UploadOutcome{
		Kind:    normalized.Kind,
		Result:  result,
		Warning: result.Warning(),
	}, nil
}

// archiveUpload keeps a copy of the raw file in object storage. Archiving is
// best effort and never fails the upload.
func (s *UploadService) archiveUpload(ctx context.Context, filename string, data []byte) {
	key := fmt.Sprintf("uploads/%s/%s", s.now().UTC().Format("2006-01-02"), filename)
	if err := s.archive.UploadObject(ctx, key, data, "text/csv"); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to archive upload")
	}
}
