package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditEventType string

const (
	AuditEventAuth    AuditEventType = "auth"
	AuditEventLibrary AuditEventType = "library"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

type AuditEvent struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	UserID      string         `gorm:"index;size:36" json:"user_id,omitempty" bson:"user_id,omitempty"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type" bson:"event_type"`
	Action      string         `gorm:"size:100" json:"action" bson:"action"`
	Description string         `gorm:"size:500" json:"description" bson:"description"`
	EntityType  string         `gorm:"size:50" json:"entity_type,omitempty" bson:"entity_type,omitempty"`
	EntityID    string         `gorm:"index;size:36" json:"entity_id,omitempty" bson:"entity_id,omitempty"`
	IPAddress   string         `gorm:"size:45" json:"ip_address,omitempty" bson:"ip_address,omitempty"`
	UserAgent   string         `gorm:"size:500" json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	Status      AuditStatus    `gorm:"size:20" json:"status" bson:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty" bson:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at" bson:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}

func (e *AuditEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
