package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCache is a minimal in-process cache for service tests.
type memCache struct {
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (m *memCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (m *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = data
	return nil
}

func (m *memCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func (m *memCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (m *memCache) Ping(ctx context.Context) error                          { return nil }

func TestTrendingServedFromCache(t *testing.T) {
	var upstreamCalls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls.Add(1)
		w.Write([]byte(searchJSON))
	})

	svc := NewService(client, newMemCache())
	ctx := context.Background()

	first, err := svc.Trending(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, first.Books, 2)
	assert.Equal(t, int32(1), upstreamCalls.Load())

	second, err := svc.Trending(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, first.Subject, second.Subject)
	assert.Equal(t, int32(1), upstreamCalls.Load(), "warm cache must not hit upstream")
}

func TestTrendingCacheTruncatesToLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchJSON))
	})

	svc := NewService(client, newMemCache())
	ctx := context.Background()

	_, err := svc.Trending(ctx, 10)
	require.NoError(t, err)

	limited, err := svc.Trending(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited.Books, 1)
}

func TestRefreshTrendingOverwritesCache(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchJSON))
	})

	cache := newMemCache()
	svc := NewService(client, cache)
	ctx := context.Background()

	_, err := svc.RefreshTrending(ctx, 10)
	require.NoError(t, err)

	_, ok := cache.entries[trendingCacheKey]
	assert.True(t, ok)
}
