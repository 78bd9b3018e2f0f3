package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"booklibrary-backend/internal/config"
	catalogJob "booklibrary-backend/internal/domains/catalog/job"
	"booklibrary-backend/internal/shared"
	"booklibrary-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerRefreshTrendingJob()
}

// Trending refresh keeps the Redis trending cache warm so the API
// serves /books/trending without a live Open Library round-trip.
func (s *Scheduler) registerRefreshTrendingJob() error {
	payload, err := json.Marshal(catalogJob.RefreshTrendingPayload{
		Limit: s.jobConfig.TrendingLimit,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeRefreshTrending, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.TrendingCron,
		task,
		asynq.Queue(shared.QueueCatalog),
		asynq.MaxRetry(1),
		asynq.Timeout(2*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register RefreshTrending job", err)
		return err
	}

	logger.Info("Registered RefreshTrending job", map[string]interface{}{
		"cron":  s.jobConfig.TrendingCron,
		"limit": s.jobConfig.TrendingLimit,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
