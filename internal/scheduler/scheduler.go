// Package scheduler runs recurring ingest jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
)

// JobFunc is a scheduled unit of work
type JobFunc func(ctx context.Context) error

type jobEntry struct {
	name     string
	schedule string
	handler  JobFunc
	cronID   cron.EntryID
	running  bool
	lastRun  time.Time
	lastErr  error
}

// JobStatus describes a registered job
type JobStatus struct {
	Name     string
	Schedule string
	NextRun  time.Time
	LastRun  time.Time
	LastErr  error
}

// Service owns the cron runner and its jobs
type Service struct {
	cron    *cron.Cron
	logger  arbor.ILogger
	timeout time.Duration
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	jobs    map[string]*jobEntry
	started bool
}

// NewService creates a scheduler evaluating specs in the named timezone.
// Each run is bounded by timeout.
func NewService(timezone string, timeout time.Duration, logger arbor.ILogger) (*Service, error) {
	loc := time.Local
	if timezone != "" {
		var err error
		if loc, err = time.LoadLocation(timezone); err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		cron:    cron.New(cron.WithLocation(loc)),
		logger:  logger,
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
		jobs:    make(map[string]*jobEntry),
	}, nil
}

// Register adds a job under a unique name
func (s *Service) Register(name, schedule string, handler JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}

	entry := &jobEntry{name: name, schedule: schedule, handler: handler}
	id, err := s.cron.AddFunc(schedule, func() { s.run(entry) })
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %q: %w", schedule, name, err)
	}
	entry.cronID = id
	s.jobs[name] = entry

	s.logger.Info().Str("job", name).Str("schedule", schedule).Msg("Job registered")
	return nil
}

// RunNow runs a registered job synchronously
func (s *Service) RunNow(name string) error {
	s.mu.Lock()
	entry, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("job %q not registered", name)
	}
	return s.run(entry)
}

// Start begins evaluating schedules
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.cron.Start()
	s.logger.Info().Int("jobs", len(s.jobs)).Msg("Scheduler started")
}

// Stop cancels running jobs and waits for them to return
func (s *Service) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("Scheduler stopped")
}

// Status lists registered jobs
func (s *Service) Status() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]JobStatus, 0, len(s.jobs))
	for _, e := range s.jobs {
		out = append(out, JobStatus{
			Name:     e.name,
			Schedule: e.schedule,
			NextRun:  s.cron.Entry(e.cronID).Next,
			LastRun:  e.lastRun,
			LastErr:  e.lastErr,
		})
	}
	return out
}

// run executes entry unless a previous run is still in progress
func (s *Service) run(entry *jobEntry) error {
	s.mu.Lock()
	if entry.running {
		s.mu.Unlock()
		s.logger.Warn().Str("job", entry.name).Msg("Previous run still in progress, skipping")
		return nil
	}
	entry.running = true
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	started := time.Now()
	err := entry.handler(ctx)

	s.mu.Lock()
	entry.running = false
	entry.lastRun = started
	entry.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Error().Err(err).Str("job", entry.name).Dur("duration", time.Since(started)).Msg("Scheduled job failed")
		return err
	}
	s.logger.Info().Str("job", entry.name).Dur("duration", time.Since(started)).Msg("Scheduled job completed")
	return nil
}
