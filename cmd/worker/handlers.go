package main

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"booklibrary-backend/internal/config"
	"booklibrary-backend/internal/domains/catalog"
	catalogJob "booklibrary-backend/internal/domains/catalog/job"
	infraCache "booklibrary-backend/internal/infrastructure/cache"
	"booklibrary-backend/internal/shared"
)

// HandlerRegistry holds every task handler the worker serves.
type HandlerRegistry struct {
	refreshTrending *catalogJob.RefreshTrendingHandler
}

// setupHandlers wires the worker-side dependency graph. The worker only
// needs Redis and the Open Library client, not the full API container.
func setupHandlers(cfg *config.Config) (*HandlerRegistry, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		return nil, nil, err
	}

	client := catalog.NewClient(cfg.OpenLibrary)
	service := catalog.NewService(client, redisCache)

	registry := &HandlerRegistry{
		refreshTrending: catalogJob.NewRefreshTrendingHandler(service),
	}

	cleanup := func() {
		redisCache.Close()
	}
	return registry, cleanup, nil
}

func (r *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.Handle(shared.TypeRefreshTrending, r.refreshTrending)
}
