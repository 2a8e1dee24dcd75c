package repository

import (
	"context"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/google/uuid"
)

type IdempotencyRepository interface {
	Find(ctx context.Context, key, userID string) (entity.IdempotentRequest, error)
	// TryCreate inserts a new record. A (key, user_id) collision fails with ErrDuplicate.
	TryCreate(ctx context.Context, req entity.IdempotentRequest) error
	// TryAcquireLock takes over a record whose lock is free and which has no
	// live response. It reports false when someone else got there first.
	TryAcquireLock(ctx context.Context, id uuid.UUID, requestHash string, now, lockedUntil, expiresOn time.Time) (bool, error)
	PersistResponse(ctx context.Context, id uuid.UUID, statusCode int, body []byte) error
	ReleaseLock(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
