package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotentRequest records the outcome of one command execution. UserID is
// stored as an empty string when absent so that (key, user_id) stays unique.
type IdempotentRequest struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Key          string     `gorm:"not null;uniqueIndex:ux_idempotent_requests_key_user,priority:1"`
	UserID       string     `gorm:"not null;default:'';uniqueIndex:ux_idempotent_requests_key_user,priority:2"`
	RequestHash  string     `gorm:"not null;default:''"`
	StatusCode   int        `gorm:"not null;default:0"`
	ResponseBody []byte     `gorm:"type:bytea"`
	CreatedOn    time.Time  `gorm:"not null"`
	ExpiresOn    time.Time  `gorm:"not null;index"`
	LockedUntil  *time.Time `gorm:""`
}

func (IdempotentRequest) TableName() string {
	return "idempotent_requests"
}

func (r IdempotentRequest) HasResponse() bool {
	return r.StatusCode != 0
}

func (r IdempotentRequest) Expired(now time.Time) bool {
	return !r.ExpiresOn.After(now)
}

func (r IdempotentRequest) LockedAt(now time.Time) bool {
	return r.LockedUntil != nil && r.LockedUntil.After(now)
}
