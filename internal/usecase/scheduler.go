package usecase

import (
	"context"
	"time"

	"FeedDigest/internal/ports"
)

// Scheduler wires the interval driver with a maintenance run function.
type Scheduler struct {
	driver ports.Scheduler
	run    func(context.Context) error
}

// NewScheduler returns a helper to start/stop recurring maintenance runs.
func NewScheduler(driver ports.Scheduler, run func(context.Context) error) *Scheduler {
	return &Scheduler{driver: driver, run: run}
}

// Start registers the run function with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.run == nil {
		return nil
	}

	job := func(time.Time) {
		_ = s.run(ctx)
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
