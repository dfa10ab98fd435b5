package audit

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/animeshelf/library/internal/entities"
)

const writeTimeout = 5 * time.Second

// EventStore persists audit events. Implemented by the gorm audit repository
// and the mongo store.
type EventStore interface {
	LogEvent(ctx context.Context, event *entities.AuditEvent) error
	DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error)
}

// Service provides high-level audit logging functionality.
type Service struct {
	store   EventStore
	pending sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(store EventStore) *Service {
	return &Service{store: store}
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := s.store.LogEvent(ctx, event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until all background writes have finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

// maxFieldLen bounds free-text columns such as user agents and titles.
const maxFieldLen = 500

func newEvent(userID string, eventType entities.AuditEventType, action string, err error) *entities.AuditEvent {
	event := &entities.AuditEvent{
		UserID:    userID,
		EventType: eventType,
		Action:    action,
		Status:    entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), maxFieldLen)
	}
	return event
}

// LogAuth records a signup, login or unsubscribe attempt.
func (s *Service) LogAuth(userID, action, ipAddr, userAgent string, success bool) {
	event := newEvent(userID, entities.AuditEventAuth, action, nil)
	if !success {
		event.Status = entities.AuditStatusFailed
	}
	event.IPAddress = ipAddr
	event.UserAgent = truncate(userAgent, maxFieldLen)
	s.LogAsync(event)
}

// LogLibrary records an anime being added to or deleted from a library.
func (s *Service) LogLibrary(userID, action, animeID, title string, err error) {
	event := newEvent(userID, entities.AuditEventLibrary, action, err)
	event.Description = truncate(title, maxFieldLen)
	event.EntityType = "anime"
	event.EntityID = animeID
	s.LogAsync(event)
}

// DeleteOldEvents removes events older than now minus retention.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	return s.store.DeleteOldEvents(ctx, time.Now().Add(-retention))
}

// truncate cuts s to at most maxLen runes, ending with "..." when shortened.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
