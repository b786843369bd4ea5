package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CacheRefresher periodically re-fetches upstream data for configured
// teams so provider caches stay warm. It runs in the server process only
// and never inside the projection engine.
type CacheRefresher struct {
	cron    *cron.Cron
	logger  *logrus.Logger
	refresh func(ctx context.Context, team string, week int) error
	teams   []string
	week    int

	mu        sync.Mutex
	isRunning bool
	lastRun   time.Time
	runCount  int
	errCount  int
}

// NewCacheRefresher creates a refresher invoking refresh for each
// configured team on the given cron schedule.
func NewCacheRefresher(
	schedule string,
	teams []string,
	week int,
	refresh func(ctx context.Context, team string, week int) error,
	logger *logrus.Logger,
) (*CacheRefresher, error) {
	cronLogger := cron.VerbosePrintfLogger(logger)
	c := cron.New(cron.WithLogger(cronLogger))

	r := &CacheRefresher{
		cron:    c,
		logger:  logger,
		refresh: refresh,
		teams:   teams,
		week:    week,
	}

	if _, err := c.AddFunc(schedule, r.runOnce); err != nil {
		return nil, fmt.Errorf("failed to schedule cache refresh: %w", err)
	}

	return r, nil
}

// Start starts the cron scheduler.
func (r *CacheRefresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("cache refresher is already running")
	}

	r.logger.WithFields(logrus.Fields{
		"component": "cache_refresher",
		"teams":     r.teams,
		"week":      r.week,
	}).Info("Starting cache refresher")

	r.cron.Start()
	r.isRunning = true
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (r *CacheRefresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isRunning {
		return
	}

	ctx := r.cron.Stop()
	<-ctx.Done()
	r.isRunning = false

	r.logger.WithField("component", "cache_refresher").Info("Cache refresher stopped")
}

// runOnce refreshes every configured team, isolating per-team failures.
func (r *CacheRefresher) runOnce() {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var failures int
	for _, team := range r.teams {
		if err := r.refresh(ctx, team, r.week); err != nil {
			failures++
			r.logger.WithError(err).WithFields(logrus.Fields{
				"component": "cache_refresher",
				"team":      team,
			}).Warn("Cache refresh failed for team")
		}
	}

	r.mu.Lock()
	r.lastRun = start
	r.runCount++
	r.errCount += failures
	r.mu.Unlock()

	r.logger.WithFields(logrus.Fields{
		"component": "cache_refresher",
		"teams":     len(r.teams),
		"failures":  failures,
		"duration":  time.Since(start).String(),
	}).Info("Cache refresh cycle completed")
}

// Stats reports refresher counters for the health endpoint.
func (r *CacheRefresher) Stats() (lastRun time.Time, runs, errs int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRun, r.runCount, r.errCount
}
