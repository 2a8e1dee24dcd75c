package inmemory

import (
	"context"
	"fmt"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"github.com/google/uuid"
)

type IdempotencyRepository struct {
	db *DB
}

var _ repository.IdempotencyRepository = (*IdempotencyRepository)(nil)

func NewIdempotencyRepository(db *DB) *IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

func (r *IdempotencyRepository) Find(ctx context.Context, key, userID string) (entity.IdempotentRequest, error) {
	defer r.db.lock(ctx)()
	for _, rec := range r.db.state.idempotency {
		if rec.Key == key && rec.UserID == userID {
			return rec, nil
		}
	}
	return entity.IdempotentRequest{}, fmt.Errorf("%w: idempotency key %q", repository.ErrNotFound, key)
}

func (r *IdempotencyRepository) TryCreate(ctx context.Context, req entity.IdempotentRequest) error {
	defer r.db.lock(ctx)()
	for _, rec := range r.db.state.idempotency {
		if rec.Key == req.Key && rec.UserID == req.UserID {
			return fmt.Errorf("%w: idempotency key %q", repository.ErrDuplicate, req.Key)
		}
	}
	r.db.state.idempotency[req.ID] = req
	return nil
}

func (r *IdempotencyRepository) TryAcquireLock(ctx context.Context, id uuid.UUID, requestHash string, now, lockedUntil, expiresOn time.Time) (bool, error) {
	defer r.db.lock(ctx)()
	rec, ok := r.db.state.idempotency[id]
	if !ok {
		return false, nil
	}
	if rec.LockedAt(now) || (rec.HasResponse() && !rec.Expired(now)) {
		return false, nil
	}
	rec.LockedUntil = &lockedUntil
	rec.ExpiresOn = expiresOn
	rec.RequestHash = requestHash
	rec.StatusCode = 0
	rec.ResponseBody = nil
	r.db.state.idempotency[id] = rec
	return true, nil
}

func (r *IdempotencyRepository) PersistResponse(ctx context.Context, id uuid.UUID, statusCode int, body []byte) error {
	defer r.db.lock(ctx)()
	rec, ok := r.db.state.idempotency[id]
	if !ok {
		return fmt.Errorf("%w: idempotent request %s", repository.ErrNotFound, id)
	}
	rec.StatusCode = statusCode
	rec.ResponseBody = append([]byte(nil), body...)
	rec.LockedUntil = nil
	r.db.state.idempotency[id] = rec
	return nil
}

func (r *IdempotencyRepository) ReleaseLock(ctx context.Context, id uuid.UUID) error {
	defer r.db.lock(ctx)()
	rec, ok := r.db.state.idempotency[id]
	if !ok {
		return nil
	}
	rec.LockedUntil = nil
	r.db.state.idempotency[id] = rec
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	defer r.db.lock(ctx)()
	var n int64
	for id, rec := range r.db.state.idempotency {
		if rec.ExpiresOn.Before(before) && !rec.LockedAt(before) {
			delete(r.db.state.idempotency, id)
			n++
		}
	}
	return n, nil
}
