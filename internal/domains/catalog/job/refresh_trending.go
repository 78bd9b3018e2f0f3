package job

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"booklibrary-backend/internal/domains/catalog"
)

// RefreshTrendingPayload configures one trending refresh run.
type RefreshTrendingPayload struct {
	Limit int `json:"limit"`
}

// RefreshTrendingHandler pre-warms the trending cache so the API never
// waits on Open Library for the trending endpoint.
type RefreshTrendingHandler struct {
	service *catalog.Service
}

func NewRefreshTrendingHandler(service *catalog.Service) *RefreshTrendingHandler {
	return &RefreshTrendingHandler{service: service}
}

func (h *RefreshTrendingHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload RefreshTrendingPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}
	if payload.Limit <= 0 {
		payload.Limit = catalog.DefaultLimit
	}

	result, err := h.service.RefreshTrending(ctx, payload.Limit)
	if err != nil {
		return err
	}

	log.Info().
		Str("subject", result.Subject).
		Int("books", len(result.Books)).
		Msg("[Job] Trending cache refreshed")
	return nil
}
