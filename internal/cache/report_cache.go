package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/magazyn-app/backend-go/internal/config"
	"github.com/magazyn-app/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	reportKeyPrefix     = "replenish:report"
	reportScanBatchSize = 100
)

// ReportCache stores assembled replenishment reports keyed by report day.
// Every committed upload invalidates the whole prefix.
type ReportCache interface {
	Get(ctx context.Context, day time.Time) ([]domain.ReportRow, bool, error)
	Set(ctx context.Context, day time.Time, rows []domain.ReportRow) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReportCache{client: client, ttl: ttl}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

// NewRedisReportCache wraps an existing client; the tests use this with
// miniredis.
func NewRedisReportCache(client *redis.Client, ttl time.Duration) ReportCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &redisReportCache{client: client, ttl: ttl}
}

func (c *redisReportCache) Get(ctx context.Context, day time.Time) ([]domain.ReportRow, bool, error) {
	payload, err := c.client.Get(ctx, buildReportKey(day)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var rows []domain.ReportRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, false, fmt.Errorf("decode report cache: %w", err)
	}

	return rows, true, nil
}

func (c *redisReportCache) Set(ctx context.Context, day time.Time, rows []domain.ReportRow) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode report cache: %w", err)
	}

	if err := c.client.Set(ctx, buildReportKey(day), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, reportKeyPrefix, reportScanBatchSize)
}

func buildReportKey(day time.Time) string {
	sum := sha1.Sum([]byte(day.UTC().Format("2006-01-02")))

	return fmt.Sprintf("%s:%s", reportKeyPrefix, hex.EncodeToString(sum[:]))
}

func (n *noopReportCache) Get(ctx context.Context, day time.Time) ([]domain.ReportRow, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) Set(ctx context.Context, day time.Time, rows []domain.ReportRow) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}
