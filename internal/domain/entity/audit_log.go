package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog stores one delivered cart integration message.
type AuditLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	MessageID string         `gorm:"not null;uniqueIndex"`
	EventType string         `gorm:"not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
