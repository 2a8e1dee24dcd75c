package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OutboxMessage struct {
	MessageID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Type             string         `gorm:"not null"`
	Destination      string         `gorm:"not null;default:default"`
	Content          datatypes.JSON `gorm:"type:jsonb;not null"`
	OccurredOn       time.Time      `gorm:"not null;index"`
	Processed        bool           `gorm:"not null;default:false;index:ix_outbox_claim,priority:1"`
	LockedBy         *string        `gorm:"index:ix_outbox_claim,priority:2"`
	LockedAt         *time.Time
	ProcessedAt      *time.Time
	RetryCount       int       `gorm:"not null;default:0"`
	NextAttemptAfter time.Time `gorm:"not null"`
	LastError        string    `gorm:"not null;default:''"`
	DeadLetteredAt   *time.Time
}

func (OutboxMessage) TableName() string {
	return "outbox_messages"
}

// Claimable reports whether a dispatcher may pick the message up at now.
func (m OutboxMessage) Claimable(now time.Time) bool {
	return !m.Processed && m.LockedBy == nil && m.DeadLetteredAt == nil && !m.NextAttemptAfter.After(now)
}
