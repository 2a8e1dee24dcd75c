package inmemory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/assert"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/infra/inmemory"
	"github.com/google/uuid"
)

func record(cartID int64, version int) entity.EventRecord {
	return entity.EventRecord{CartID: cartID, Version: version, EventType: "CartCreatedV1", DataJSON: []byte(`{}`)}
}

func TestWithTx(t *testing.T) {
	t.Run("error rolls every table back", func(t *testing.T) {
		// arrange
		db := inmemory.New()
		events := inmemory.NewEventRepository(db)
		box := inmemory.NewOutboxRepository(db)
		boom := errors.New("boom")

		// act
		err := db.WithTx(t.Context(), func(ctx context.Context) error {
			assert.NoError(t, events.AppendBatch(ctx, []entity.EventRecord{record(1, 1)}))
			assert.NoError(t, box.Add(ctx, entity.OutboxMessage{MessageID: uuid.New(), Type: "cart.created"}))
			return boom
		})

		// assert
		assert.ErrorIs(t, err, boom)
		version, err := events.CurrentVersion(t.Context(), 1)
		assert.NoError(t, err)
		assert.Equal(t, 0, version)
		assert.Equal(t, 0, len(box.Messages(t.Context())))
	})

	t.Run("nested calls join the outer transaction", func(t *testing.T) {
		// arrange
		db := inmemory.New()
		events := inmemory.NewEventRepository(db)

		// act
		err := db.WithTx(t.Context(), func(ctx context.Context) error {
			return db.WithTx(ctx, func(ctx context.Context) error {
				return events.AppendBatch(ctx, []entity.EventRecord{record(1, 1), record(1, 2)})
			})
		})

		// assert
		assert.NoError(t, err)
		version, _ := events.CurrentVersion(t.Context(), 1)
		assert.Equal(t, 2, version)
	})
}

func TestEventRepository(t *testing.T) {
	t.Run("taken version is a concurrency error and nothing is written", func(t *testing.T) {
		// arrange
		db := inmemory.New()
		events := inmemory.NewEventRepository(db)
		assert.NoError(t, events.AppendBatch(t.Context(), []entity.EventRecord{record(1, 1)}))

		// act
		err := events.AppendBatch(t.Context(), []entity.EventRecord{record(1, 2), record(1, 1)})

		// assert
		assert.ErrorIs(t, err, repository.ErrConcurrency)
		list, _ := events.ListByCart(t.Context(), 1)
		assert.Equal(t, 1, len(list))
	})

	t.Run("ids grow in append order", func(t *testing.T) {
		db := inmemory.New()
		events := inmemory.NewEventRepository(db)

		assert.NoError(t, events.AppendBatch(t.Context(), []entity.EventRecord{record(2, 1), record(1, 1), record(2, 2)}))

		list, _ := events.ListByCart(t.Context(), 2)
		assert.Equal(t, 2, len(list))
		assert.Truef(t, list[0].ID < list[1].ID, "ids out of order: %d, %d", list[0].ID, list[1].ID)
		ids, _ := events.CartIDs(t.Context())
		assert.EqualSlice(t, []int64{1, 2}, ids)
	})
}

func TestOutboxRepository(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("two workers never claim the same message", func(t *testing.T) {
		// arrange
		db := inmemory.New()
		box := inmemory.NewOutboxRepository(db)
		for i := range 5 {
			assert.NoError(t, box.Add(t.Context(), entity.OutboxMessage{
				MessageID:        uuid.New(),
				OccurredOn:       now.Add(time.Duration(i) * time.Second),
				NextAttemptAfter: now,
			}))
		}

		// act
		first, err1 := box.Claim(t.Context(), "w-1", 3, now)
		second, err2 := box.Claim(t.Context(), "w-2", 3, now)

		// assert
		assert.NoError(t, err1)
		assert.NoError(t, err2)
		assert.Equal(t, 3, len(first))
		assert.Equal(t, 2, len(second))
		seen := map[uuid.UUID]bool{}
		for _, m := range append(first, second...) {
			assert.Truef(t, !seen[m.MessageID], "message %s claimed twice", m.MessageID)
			seen[m.MessageID] = true
		}
	})

	t.Run("complete ignores messages locked by someone else", func(t *testing.T) {
		// arrange
		db := inmemory.New()
		box := inmemory.NewOutboxRepository(db)
		id := uuid.New()
		assert.NoError(t, box.Add(t.Context(), entity.OutboxMessage{MessageID: id, OccurredOn: now, NextAttemptAfter: now}))
		_, err := box.Claim(t.Context(), "w-1", 10, now)
		assert.NoError(t, err)

		// act
		err = box.Complete(t.Context(), "w-2", []repository.OutboxOutcome{{MessageID: id, Published: true, At: now}})

		// assert
		assert.NoError(t, err)
		msg := box.Messages(t.Context())[0]
		assert.Truef(t, !msg.Processed, "message completed by a foreign worker")
		assert.Equal(t, "w-1", *msg.LockedBy)
	})

	t.Run("stale locks are released", func(t *testing.T) {
		db := inmemory.New()
		box := inmemory.NewOutboxRepository(db)
		assert.NoError(t, box.Add(t.Context(), entity.OutboxMessage{MessageID: uuid.New(), OccurredOn: now, NextAttemptAfter: now}))
		_, _ = box.Claim(t.Context(), "w-1", 10, now)

		released, err := box.ReleaseStale(t.Context(), now.Add(time.Minute))

		assert.NoError(t, err)
		assert.Equal(t, int64(1), released)
		assert.Truef(t, box.Messages(t.Context())[0].Claimable(now), "released message must be claimable")
	})
}
