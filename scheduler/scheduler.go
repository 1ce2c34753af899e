// Package scheduler runs the background maintenance jobs of the API.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/giygas/myoncologist-api/interfaces"
	"github.com/giygas/myoncologist-api/logging"
	"github.com/giygas/myoncologist-api/metrics"
)

// Compile-time check to ensure Scheduler implements interfaces.Scheduler
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler evicts idle scanner sessions on a fixed interval.
type Scheduler struct {
	sessions  interfaces.SessionStore
	ttl       time.Duration
	interval  time.Duration
	scheduler *gocron.Scheduler
}

// NewScheduler creates a scheduler that sweeps sessions idle for longer than
// ttl every interval.
func NewScheduler(sessions interfaces.SessionStore, ttl, interval time.Duration) *Scheduler {
	return &Scheduler{
		sessions:  sessions,
		ttl:       ttl,
		interval:  interval,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start registers the sweep job and starts the scheduler in the background.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %s", s.interval)
	}

	_, err := s.scheduler.Every(s.interval).Do(s.sweep)
	if err != nil {
		logging.Error("Failed to schedule session sweep", "error", err)
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}

	s.scheduler.StartAsync()
	logging.Info("Session sweep scheduled", "interval", s.interval.String(), "ttl", s.ttl.String())
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) sweep() {
	start := time.Now()
	removed := s.sessions.Sweep(s.ttl)
	remaining := s.sessions.Len()

	metrics.ScannerSessionsActive.Set(float64(remaining))
	logging.Debug("Session sweep completed", "removed", removed, "remaining", remaining, "duration", time.Since(start).String())
}
