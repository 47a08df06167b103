// Package scheduler runs the periodic background jobs of the service on a
// gocron scheduler.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// Schedule describes when a job runs. Cron takes precedence over Every.
type Schedule struct {
	Every time.Duration
	Cron  string
}

// Job is a unit of periodic work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler manages periodic jobs using gocron.
type Scheduler struct {
	cron   gocron.Scheduler
	jobs   map[string]uuid.UUID // job name → gocron job UUID
	mu     sync.Mutex
	logger *slog.Logger
}

// New creates a new Scheduler.
func New(logger *slog.Logger) (*Scheduler, error) {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating gocron scheduler: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:   cron,
		jobs:   make(map[string]uuid.UUID),
		logger: logger.With("component", "scheduler"),
	}, nil
}

// Start starts running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.jobs))
}

// Stop shuts down the gocron scheduler, waiting for running jobs.
func (s *Scheduler) Stop() error {
	return s.cron.Shutdown()
}

// Add schedules job, replacing any job with the same name. A job never runs
// concurrently with itself.
func (s *Scheduler) Add(job Job, schedule Schedule) error {
	def, err := buildJobDefinition(schedule)
	if err != nil {
		return fmt.Errorf("building job definition for %q: %w", job.Name(), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if jobID, ok := s.jobs[job.Name()]; ok {
		if err := s.cron.RemoveJob(jobID); err != nil {
			s.logger.Warn("failed to remove existing job", "job", job.Name(), "error", err)
		}
		delete(s.jobs, job.Name())
	}

	name := job.Name()
	j, err := s.cron.NewJob(def,
		gocron.NewTask(func() { s.run(job) }),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("scheduling job %q: %w", name, err)
	}
	s.jobs[name] = j.ID()
	s.logger.Info("job scheduled", "job", name, "every", schedule.Every.String(), "cron", schedule.Cron)
	return nil
}

// Remove unschedules the job with the given name, if any.
func (s *Scheduler) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if jobID, ok := s.jobs[name]; ok {
		if err := s.cron.RemoveJob(jobID); err != nil {
			s.logger.Warn("failed to remove job", "job", name, "error", err)
		}
		delete(s.jobs, name)
	}
}

func (s *Scheduler) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.logger.Error("job failed", "job", job.Name(), "error", err)
		return
	}
	s.logger.Debug("job finished", "job", job.Name(), "duration", time.Since(start))
}

// buildJobDefinition converts a Schedule into a gocron JobDefinition.
func buildJobDefinition(schedule Schedule) (gocron.JobDefinition, error) {
	switch {
	case schedule.Cron != "":
		return gocron.CronJob(schedule.Cron, false), nil
	case schedule.Every > 0:
		return gocron.DurationJob(schedule.Every), nil
	default:
		return nil, errors.New("schedule needs a positive interval or a cron expression")
	}
}
