package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"booklibrary-backend/internal/config"
	"booklibrary-backend/internal/infrastructure/queue"
	"booklibrary-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)

	handlers, cleanup, err := setupHandlers(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize worker dependencies: %v", err)
	}
	defer cleanup()

	srv := setupAsynqServer(cfg, handlers)

	scheduler := queue.NewScheduler(cfg.Redis.Host, cfg.Jobs)
	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatalf("Failed to register scheduled jobs: %v", err)
	}
	go func() {
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Scheduler stopped: %v", err)
		}
	}()

	log.Println("Worker started, waiting for tasks...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down worker...")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Println("Worker exited gracefully")
}
