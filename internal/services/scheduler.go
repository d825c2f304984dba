package services

import (
	"context"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
)

// Scheduler runs a collection task on a fixed interval. A run already in
// flight is never overlapped; a failed run is logged and the next tick
// tries again.
type Scheduler struct {
	interval time.Duration
	task     func(ctx context.Context) error
	logger   arbor.ILogger

	stop     chan struct{}
	stopOnce sync.Once
}

// NewScheduler creates a scheduler for the given task.
func NewScheduler(interval time.Duration, logger arbor.ILogger, task func(ctx context.Context) error) *Scheduler {
	return &Scheduler{
		interval: interval,
		task:     task,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// Start launches the tick loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("Starting refresh scheduler")

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.task(ctx); err != nil {
					s.logger.Warn().Err(err).Msg("Scheduled collection failed")
				}
			case <-s.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the tick loop. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}
