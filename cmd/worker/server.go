package main

import (
	"context"
	"log"

	"github.com/hibiken/asynq"

	"booklibrary-backend/internal/config"
	"booklibrary-backend/internal/shared"
)

func setupAsynqServer(cfg *config.Config, handlers *HandlerRegistry) *asynq.Server {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.Redis.Host, Password: cfg.Redis.Password, DB: cfg.Redis.DB},
		asynq.Config{
			Queues: map[string]int{
				shared.QueueCatalog: 5,
				shared.QueueDefault: 10,
			},
			Concurrency: 10,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq] Task failed - Type: %s, Error: %v", task.Type(), err)
			}),
		},
	)

	go func() {
		if err := srv.Start(mux); err != nil {
			log.Fatalf("Failed to start asynq server: %v", err)
		}
	}()

	return srv
}
