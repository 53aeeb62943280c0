package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"JSMChanges/internal/domain"
	"JSMChanges/internal/ports"
)

// Scheduler wires the periodic driver with the reporter use case.
type Scheduler struct {
	driver   ports.Scheduler
	reporter *Reporter
	logger   *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring runs.
func NewScheduler(driver ports.Scheduler, reporter *Reporter, logger *slog.Logger) *Scheduler {
	return &Scheduler{driver: driver, reporter: reporter, logger: logger}
}

// Start registers the reporter with the provided scheduler. Failed runs are
// logged and the schedule keeps going.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.reporter == nil {
		return nil
	}

	job := func(trigger time.Time) {
		if _, err := s.reporter.Run(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			s.logRunError(trigger, err)
		}
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

func (s *Scheduler) logRunError(trigger time.Time, err error) {
	if s.logger == nil {
		return
	}
	level := slog.LevelError
	if errors.Is(err, domain.ErrInsufficientPages) || errors.Is(err, domain.ErrNoCurrentEntries) {
		level = slog.LevelWarn
	}
	s.logger.Log(context.Background(), level, "scheduled run failed", "trigger", trigger.Format(time.RFC3339), "error", err)
}
