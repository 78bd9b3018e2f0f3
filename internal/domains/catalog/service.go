package catalog

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"booklibrary-backend/pkg/cache"
)

const (
	trendingCacheKey = "catalog:trending"
	trendingTTL      = 2 * time.Hour
)

// Service fronts the Open Library client with a trending cache.
// Search and details pass straight through.
type Service struct {
	client *Client
	cache  cache.Cache
}

func NewService(client *Client, cache cache.Cache) *Service {
	return &Service{
		client: client,
		cache:  cache,
	}
}

func (s *Service) Client() *Client {
	return s.client
}

// Trending serves the worker-maintained cache when warm and falls back
// to a live Open Library fetch on a miss.
func (s *Service) Trending(ctx context.Context, limit int) (*TrendingResult, error) {
	var cached TrendingResult
	found, err := s.cache.Get(ctx, trendingCacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Msg("[Catalog] Trending cache read failed")
	}
	if found && len(cached.Books) > 0 {
		if limit > 0 && limit < len(cached.Books) {
			cached.Books = cached.Books[:limit]
		}
		return &cached, nil
	}

	return s.RefreshTrending(ctx, limit)
}

// RefreshTrending fetches a fresh trending set and stores it in the cache.
// Called by the scheduled worker job and on cache misses.
func (s *Service) RefreshTrending(ctx context.Context, limit int) (*TrendingResult, error) {
	result, err := s.client.Trending(ctx, limit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, trendingCacheKey, result, trendingTTL); err != nil {
		log.Warn().Err(err).Msg("[Catalog] Trending cache write failed")
	}

	return result, nil
}
