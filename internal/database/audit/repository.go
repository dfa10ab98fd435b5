package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/animeshelf/library/internal/entities"
)

// Repository stores the signup, login and library-change trail in the
// audit_events table.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) LogEvent(ctx context.Context, event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(event).Error
}

// DeleteOldEvents drops every event created before olderThan and reports
// how many rows went.
func (r *Repository) DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", olderThan).
		Delete(&entities.AuditEvent{})
	return res.RowsAffected, res.Error
}
