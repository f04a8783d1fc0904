package scraper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler drives the ingest service on a fixed interval. Unlike a sleep
// loop it can be stopped cleanly, and Stop waits for an in-flight cycle to
// finish.
type Scheduler struct {
	cron     *cron.Cron
	service  *Service
	interval time.Duration
	logger   *logrus.Logger
	running  sync.WaitGroup
}

func NewScheduler(service *Service, interval time.Duration, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		service:  service,
		interval: interval,
		logger:   logger,
	}
}

// Start runs one cycle immediately, then repeats on the configured interval.
// Cycle failures are logged and never stop the schedule.
func (s *Scheduler) Start() error {
	spec := fmt.Sprintf("@every %s", s.interval)
	_, err := s.cron.AddFunc(spec, func() {
		s.running.Add(1)
		s.runCycle()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule ingest job: %w", err)
	}

	// Add before spawning so Stop cannot slip past Wait while the first
	// cycle is still starting up.
	s.running.Add(1)
	go s.runCycle()
	s.cron.Start()

	s.logger.WithField("interval", s.interval).Info("Ingest scheduler started")
	return nil
}

// Stop halts the schedule and blocks until a running cycle completes.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running.Wait()
	s.logger.Info("Ingest scheduler stopped")
}

// runCycle assumes the caller already did running.Add(1).
func (s *Scheduler) runCycle() {
	defer s.running.Done()

	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	if err := s.service.RunOnce(ctx); err != nil {
		s.logger.WithError(err).Error("Ingest cycle failed")
	}
}
