package services

import (
	"context"
	"fmt"
	"time"

	"hitrate-app-go/logging"

	"github.com/go-co-op/gocron/v2"
)

// RefresherService re-ingests league feeds on an interval and invalidates
// cached summaries so the next request sees fresh data.
type RefresherService struct {
	scheduler gocron.Scheduler
	loader    *DataLoaderService
	cache     *CacheService
	leagues   []string
	interval  time.Duration
	logger    *logging.Logger
}

func NewRefresherService(
	loader *DataLoaderService,
	cache *CacheService,
	leagueCodes []string,
	interval time.Duration,
) (*RefresherService, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &RefresherService{
		scheduler: scheduler,
		loader:    loader,
		cache:     cache,
		leagues:   leagueCodes,
		interval:  interval,
		logger:    logging.WithPrefix("Refresher"),
	}, nil
}

// Start schedules the refresh job and begins running it.
func (r *RefresherService) Start() error {
	_, err := r.scheduler.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(r.refresh),
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh job: %w", err)
	}

	r.scheduler.Start()
	r.logger.Infof("Feed refresh scheduled every %s for leagues %v", r.interval, r.leagues)
	return nil
}

// Stop shuts the scheduler down, waiting for a running refresh to finish.
func (r *RefresherService) Stop() {
	if err := r.scheduler.Shutdown(); err != nil {
		r.logger.Errorf("Scheduler shutdown: %v", err)
	}
}

func (r *RefresherService) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	r.logger.Info("Refreshing league feeds")
	if err := r.loader.LoadAll(ctx, r.leagues); err != nil {
		r.logger.Errorf("Feed refresh had errors: %v", err)
	}
	r.cache.Invalidate(ctx, "summary:*")
}
