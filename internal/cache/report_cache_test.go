package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/magazyn-app/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) ReportCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisReportCache(client, time.Minute)
}

func TestReportCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)
	day := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)

	_, ok, err := c.Get(ctx, day)
	require.NoError(t, err)
	assert.False(t, ok)

	rows := []domain.ReportRow{{SKU: "A1", Supplier: domain.NoSupplier, Order30D: 14}}
	require.NoError(t, c.Set(ctx, day, rows))

	got, ok, err := c.Get(ctx, day)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rows, got)

	// Same calendar day, different time of day, hits the same key.
	later := day.Add(3 * time.Hour)
	_, ok, err = c.Get(ctx, later)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReportCacheInvalidateAll(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, c.Set(ctx, day, []domain.ReportRow{{SKU: "A1"}}))
	require.NoError(t, c.Set(ctx, day.AddDate(0, 0, 1), []domain.ReportRow{{SKU: "B2"}}))

	require.NoError(t, c.InvalidateAll(ctx))

	_, ok, err := c.Get(ctx, day)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = c.Get(ctx, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNoopReportCacheNeverHits(t *testing.T) {
	ctx := context.Background()
	c := NewNoopReportCache()

	require.NoError(t, c.Set(ctx, time.Now(), []domain.ReportRow{{SKU: "A1"}}))
	_, ok, err := c.Get(ctx, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
}
