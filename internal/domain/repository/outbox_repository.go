package repository

import (
	"context"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/google/uuid"
)

// OutboxOutcome is the result of one delivery attempt.
type OutboxOutcome struct {
	MessageID        uuid.UUID
	Published        bool
	RetryCount       int
	NextAttemptAfter time.Time
	LastError        string
	DeadLettered     bool
	At               time.Time
}

type OutboxRepository interface {
	Add(ctx context.Context, msg entity.OutboxMessage) error
	// Claim locks up to limit claimable messages for workerID, oldest first.
	Claim(ctx context.Context, workerID string, limit int, now time.Time) ([]entity.OutboxMessage, error)
	// Complete persists the outcomes of a batch in one operation and
	// releases the locks held by workerID.
	Complete(ctx context.Context, workerID string, outcomes []OutboxOutcome) error
	// ReleaseStale unlocks unprocessed messages locked before cutoff.
	ReleaseStale(ctx context.Context, cutoff time.Time) (int64, error)
}
