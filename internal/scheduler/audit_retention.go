// Package scheduler runs cron-driven maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultAuditCleanupSchedule runs the cleanup daily at 03:00.
const DefaultAuditCleanupSchedule = "0 3 * * *"

// AuditCleanupRunner triggers one audit retention pass, either by queueing a
// task or by running it inline.
type AuditCleanupRunner interface {
	EnqueueAuditCleanup(ctx context.Context, retentionDays int) error
}

// AuditCleanupFunc adapts a function to AuditCleanupRunner.
type AuditCleanupFunc func(ctx context.Context, retentionDays int) error

func (f AuditCleanupFunc) EnqueueAuditCleanup(ctx context.Context, retentionDays int) error {
	return f(ctx, retentionDays)
}

// AuditRetentionScheduler periodically removes old audit events.
type AuditRetentionScheduler struct {
	runner        AuditCleanupRunner
	schedule      string
	retentionDays int

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
	ctx       context.Context
}

// NewAuditRetentionScheduler creates a new scheduler instance.
func NewAuditRetentionScheduler(runner AuditCleanupRunner, schedule string, retentionDays int) *AuditRetentionScheduler {
	if schedule == "" {
		schedule = DefaultAuditCleanupSchedule
	}
	return &AuditRetentionScheduler{
		runner:        runner,
		schedule:      schedule,
		retentionDays: retentionDays,
		cron:          cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// ValidateSchedule checks a standard five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := cron.ParseStandard(schedule)
	return err
}

// Start registers the job and starts the cron loop. It stops when ctx is done.
func (s *AuditRetentionScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}

	s.ctx = ctx
	s.cron.Start()
	s.isRunning = true

	sched, _ := cron.ParseStandard(s.schedule)
	log.Printf("Audit retention scheduler: started with schedule '%s', keeping %d days. Next run: %v",
		s.schedule, s.retentionDays, sched.Next(time.Now()))

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job.
func (s *AuditRetentionScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	stopped := s.cron.Stop()
	s.mu.Unlock()

	// A running job takes s.mu, so wait without holding it.
	<-stopped.Done()

	log.Printf("Audit retention scheduler: stopped")
}

// RunNow triggers a cleanup outside the schedule.
func (s *AuditRetentionScheduler) RunNow(ctx context.Context) error {
	return s.runner.EnqueueAuditCleanup(ctx, s.retentionDays)
}

func (s *AuditRetentionScheduler) run() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := s.runner.EnqueueAuditCleanup(ctx, s.retentionDays); err != nil {
		log.Printf("Audit retention scheduler: cleanup failed: %v", err)
	}
}
