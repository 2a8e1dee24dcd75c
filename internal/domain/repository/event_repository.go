package repository

import (
	"context"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
)

type EventRepository interface {
	// CurrentVersion returns the highest stored version for the cart, 0 when empty.
	CurrentVersion(ctx context.Context, cartID int64) (int, error)
	// AppendBatch stores all records atomically. A (cart_id, version)
	// collision fails with ErrConcurrency.
	AppendBatch(ctx context.Context, records []entity.EventRecord) error
	// ListByCart returns the records of a cart in insertion order.
	ListByCart(ctx context.Context, cartID int64) ([]entity.EventRecord, error)
	CartIDs(ctx context.Context) ([]int64, error)
}
