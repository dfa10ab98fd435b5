package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// DefaultAuditRetentionDays applies when a task carries no retention.
const DefaultAuditRetentionDays = 30

const auditCleanupQueue = "cleanup_audit_events"

var errNoCleaner = errors.New("audit event cleaner not configured")

// AuditEventCleaner deletes audit events older than the retention window.
// audit.Service implements it.
type AuditEventCleaner interface {
	DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

// CleanupAuditEventsTask is one retention pass over the audit trail.
type CleanupAuditEventsTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config retries a failed pass three times, five minutes apart. Finished
// tasks are kept for a day, with payloads only for failures.
func (CleanupAuditEventsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        auditCleanupQueue,
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration: 24 * time.Hour,
			Data:     &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func (t CleanupAuditEventsTask) retention() time.Duration {
	days := t.RetentionDays
	if days <= 0 {
		days = DefaultAuditRetentionDays
	}
	return time.Duration(days) * 24 * time.Hour
}

// CleanupAuditEvents runs one pass inline and returns the number of events
// removed.
func CleanupAuditEvents(ctx context.Context, cleaner AuditEventCleaner, retentionDays int) (int64, error) {
	if cleaner == nil {
		return 0, errNoCleaner
	}

	task := CleanupAuditEventsTask{RetentionDays: retentionDays}
	deleted, err := cleaner.DeleteOldEvents(ctx, task.retention())
	if err != nil {
		return 0, fmt.Errorf("cleanup audit events: %w", err)
	}

	log.Printf("[TASK] Removed %d audit events older than %v", deleted, task.retention())
	return deleted, nil
}

func CleanupAuditEventsProcessor(cleaner AuditEventCleaner) backlite.QueueProcessor[CleanupAuditEventsTask] {
	return func(ctx context.Context, task CleanupAuditEventsTask) error {
		_, err := CleanupAuditEvents(ctx, cleaner, task.RetentionDays)
		return err
	}
}

// NewCleanupAuditEventsQueue binds the cleanup task to cleaner.
func NewCleanupAuditEventsQueue(cleaner AuditEventCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupAuditEventsProcessor(cleaner))
}
