package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IdempotencyRepository struct {
	db *DB
}

var _ repository.IdempotencyRepository = (*IdempotencyRepository)(nil)

func NewIdempotencyRepository(db *DB) *IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

func (r *IdempotencyRepository) Find(ctx context.Context, key, userID string) (entity.IdempotentRequest, error) {
	var rec entity.IdempotentRequest
	err := r.db.Write(ctx).First(&rec, "key = ? AND user_id = ?", key, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.IdempotentRequest{}, fmt.Errorf("%w: idempotency key %q", repository.ErrNotFound, key)
	}
	return rec, err
}

func (r *IdempotencyRepository) TryCreate(ctx context.Context, req entity.IdempotentRequest) error {
	err := r.db.Write(ctx).Create(&req).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: idempotency key %q", repository.ErrDuplicate, req.Key)
	}
	return err
}

// TryAcquireLock is a conditional update; the row count tells whether this
// caller won.
func (r *IdempotencyRepository) TryAcquireLock(ctx context.Context, id uuid.UUID, requestHash string, now, lockedUntil, expiresOn time.Time) (bool, error) {
	res := r.db.Write(ctx).
		Model(&entity.IdempotentRequest{}).
		Where("id = ?", id).
		Where("locked_until IS NULL OR locked_until <= ?", now).
		Where("status_code = 0 OR expires_on <= ?", now).
		Updates(map[string]any{
			"locked_until":  lockedUntil,
			"expires_on":    expiresOn,
			"request_hash":  requestHash,
			"status_code":   0,
			"response_body": nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *IdempotencyRepository) PersistResponse(ctx context.Context, id uuid.UUID, statusCode int, body []byte) error {
	res := r.db.Write(ctx).
		Model(&entity.IdempotentRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status_code":   statusCode,
			"response_body": body,
			"locked_until":  nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: idempotent request %s", repository.ErrNotFound, id)
	}
	return nil
}

func (r *IdempotencyRepository) ReleaseLock(ctx context.Context, id uuid.UUID) error {
	return r.db.Write(ctx).
		Model(&entity.IdempotentRequest{}).
		Where("id = ?", id).
		Update("locked_until", nil).Error
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.Write(ctx).
		Where("expires_on < ?", before).
		Where("locked_until IS NULL OR locked_until <= ?", before).
		Delete(&entity.IdempotentRequest{})
	return res.RowsAffected, res.Error
}
