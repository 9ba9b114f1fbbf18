package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a unit of periodic maintenance work.
type Job func(ctx context.Context) error

// Scheduler runs maintenance jobs on cron schedules until its context is done.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
	jobs   int
}

// NewScheduler creates a scheduler working in UTC.
func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		logger: logger,
	}
}

// AddJob registers a job under the given cron spec. An empty spec disables the job.
func (s *Scheduler) AddJob(ctx context.Context, name, spec string, job Job) error {
	if spec == "" {
		s.logger.Info("scheduled job disabled", zap.String("job", name))
		return nil
	}

	_, err := s.cron.AddFunc(spec, func() {
		s.logger.Debug("cron triggered", zap.String("job", name))
		if err := job(ctx); err != nil {
			s.logger.Error("scheduled job failed", zap.String("job", name), zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", name, err)
	}

	s.jobs++
	return nil
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return s.jobs
}

// Run starts the cron loop and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.logger.Info("scheduler started", zap.Int("jobs", s.jobs))

	<-ctx.Done()

	// Wait for running jobs to finish.
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")

	return nil
}
