package mongostore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/animeshelf/library/internal/entities"
)

// LogEvent saves an audit event.
func (s *Store) LogEvent(ctx context.Context, event *entities.AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	_, err := s.audit().InsertOne(ctx, event)
	return err
}

// DeleteOldEvents removes audit events older than the specified time.
func (s *Store) DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.audit().DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": olderThan}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
