package inmemory

import (
	"context"
	"fmt"
	"slices"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
)

type EventRepository struct {
	db *DB
}

var _ repository.EventRepository = (*EventRepository)(nil)

func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) CurrentVersion(ctx context.Context, cartID int64) (int, error) {
	defer r.db.lock(ctx)()
	version := 0
	for _, rec := range r.db.state.events {
		if rec.CartID == cartID && rec.Version > version {
			version = rec.Version
		}
	}
	return version, nil
}

func (r *EventRepository) AppendBatch(ctx context.Context, records []entity.EventRecord) error {
	defer r.db.lock(ctx)()
	s := r.db.state

	taken := make(map[[2]int64]struct{}, len(records))
	for _, rec := range s.events {
		taken[[2]int64{rec.CartID, int64(rec.Version)}] = struct{}{}
	}
	for _, rec := range records {
		key := [2]int64{rec.CartID, int64(rec.Version)}
		if _, ok := taken[key]; ok {
			return fmt.Errorf("%w: cart %d version %d already exists", repository.ErrConcurrency, rec.CartID, rec.Version)
		}
		taken[key] = struct{}{}
	}

	for _, rec := range records {
		s.nextEventID++
		rec.ID = s.nextEventID
		s.events = append(s.events, rec)
	}
	return nil
}

func (r *EventRepository) ListByCart(ctx context.Context, cartID int64) ([]entity.EventRecord, error) {
	defer r.db.lock(ctx)()
	var out []entity.EventRecord
	for _, rec := range r.db.state.events {
		if rec.CartID == cartID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *EventRepository) CartIDs(ctx context.Context) ([]int64, error) {
	defer r.db.lock(ctx)()
	seen := make(map[int64]struct{})
	var ids []int64
	for _, rec := range r.db.state.events {
		if _, ok := seen[rec.CartID]; ok {
			continue
		}
		seen[rec.CartID] = struct{}{}
		ids = append(ids, rec.CartID)
	}
	slices.Sort(ids)
	return ids, nil
}
