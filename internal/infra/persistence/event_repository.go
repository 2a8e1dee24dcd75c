package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"gorm.io/gorm"
)

const appendBatchSize = 100

type EventRepository struct {
	db *DB
}

var _ repository.EventRepository = (*EventRepository)(nil)

func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// CurrentVersion reads from the primary: a replica may lag behind the
// version the next append has to follow.
func (r *EventRepository) CurrentVersion(ctx context.Context, cartID int64) (int, error) {
	var version int
	err := r.db.Write(ctx).
		Model(&entity.EventRecord{}).
		Where("cart_id = ?", cartID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&version).Error
	return version, err
}

func (r *EventRepository) AppendBatch(ctx context.Context, records []entity.EventRecord) error {
	if len(records) == 0 {
		return nil
	}
	err := r.db.WithTx(ctx, func(txCtx context.Context) error {
		return r.db.Write(txCtx).CreateInBatches(&records, appendBatchSize).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: cart %d version %d already taken", repository.ErrConcurrency, records[0].CartID, records[0].Version)
	}
	return err
}

func (r *EventRepository) ListByCart(ctx context.Context, cartID int64) ([]entity.EventRecord, error) {
	var records []entity.EventRecord
	err := r.db.Read(ctx).
		Where("cart_id = ?", cartID).
		Order("id").
		Find(&records).Error
	return records, err
}

func (r *EventRepository) CartIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.Read(ctx).
		Model(&entity.EventRecord{}).
		Distinct("cart_id").
		Order("cart_id").
		Pluck("cart_id", &ids).Error
	return ids, err
}
