// Package inmemory keeps the cart tables in process memory. It backs the
// service tests and local runs without PostgreSQL.
package inmemory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"github.com/google/uuid"
)

type state struct {
	events      []entity.EventRecord
	nextEventID int64

	outbox      map[uuid.UUID]entity.OutboxMessage
	idempotency map[uuid.UUID]entity.IdempotentRequest

	carts       map[int64]entity.Cart
	items       map[int64]entity.CartItem
	saved       map[int64]entity.SavedItem
	nextCartID  int64
	nextItemID  int64
	nextSavedID int64
}

func newState() *state {
	return &state{
		outbox:      make(map[uuid.UUID]entity.OutboxMessage),
		idempotency: make(map[uuid.UUID]entity.IdempotentRequest),
		carts:       make(map[int64]entity.Cart),
		items:       make(map[int64]entity.CartItem),
		saved:       make(map[int64]entity.SavedItem),
	}
}

func (s *state) clone() *state {
	return &state{
		events:      slices.Clone(s.events),
		nextEventID: s.nextEventID,
		outbox:      maps.Clone(s.outbox),
		idempotency: maps.Clone(s.idempotency),
		carts:       maps.Clone(s.carts),
		items:       maps.Clone(s.items),
		saved:       maps.Clone(s.saved),
		nextCartID:  s.nextCartID,
		nextItemID:  s.nextItemID,
		nextSavedID: s.nextSavedID,
	}
}

// DB serializes all access behind one mutex. A transaction holds the mutex
// for its whole duration and restores a copy of the tables on error.
type DB struct {
	mu    sync.Mutex
	state *state
}

var _ repository.Store = (*DB)(nil)

type txKey struct{}

func New() *DB {
	return &DB{state: newState()}
}

func (db *DB) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (db *DB) Close() {}

func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if db.inTx(ctx) {
		return fn(ctx)
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	backup := db.state.clone()
	if err := fn(context.WithValue(ctx, txKey{}, db)); err != nil {
		db.state = backup
		return err
	}
	return nil
}

func (db *DB) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*DB)
	return owner == db
}

// lock returns the function that releases the table lock. Inside a
// transaction the lock is already held.
func (db *DB) lock(ctx context.Context) func() {
	if db.inTx(ctx) {
		return func() {}
	}
	db.mu.Lock()
	return db.mu.Unlock
}
