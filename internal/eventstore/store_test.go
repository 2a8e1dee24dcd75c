package eventstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/assert"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/event"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/eventstore"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/infra/inmemory"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func TestStore(t *testing.T) {
	var (
		clock    = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		newStore = func() (*eventstore.Store, *inmemory.EventRepository, *logtest.Hook) {
			log, hook := logtest.NewNullLogger()
			repo := inmemory.NewEventRepository(inmemory.New())
			return eventstore.New(repo, log, eventstore.WithClock(func() time.Time { return clock })), repo, hook
		}
		itemAdded = func(productID int64) event.Payload {
			return event.ItemAddedV1{ProductID: productID, Quantity: 1, UnitPrice: decimal.NewFromInt(5)}
		}
		versions = func(events []event.Envelope) []int {
			var out []int
			for _, e := range events {
				out = append(out, e.Version)
			}
			return out
		}
	)

	t.Run("load returns appended events with contiguous versions", func(t *testing.T) {
		// arrange
		ctx := t.Context()
		sut, _, _ := newStore()
		for i := range 5 {
			_, err := sut.Append(ctx, 1, []event.Payload{itemAdded(int64(i + 1))}, "tester")
			assert.NoError(t, err)
		}
		_, err := sut.Append(ctx, 1, []event.Payload{itemAdded(6), itemAdded(7)}, "tester")
		assert.NoError(t, err)

		// act
		got, err := sut.Load(ctx, 1)

		// assert
		assert.NoError(t, err)
		assert.EqualSlice(t, []int{1, 2, 3, 4, 5, 6, 7}, versions(got))
		for i, e := range got {
			added, ok := e.Payload.(event.ItemAddedV1)
			assert.Truef(t, ok, "event %d has payload %T", i, e.Payload)
			assert.Equal(t, int64(i+1), added.ProductID)
			assert.Equal(t, "tester", e.CausedBy)
			assert.EqualTime(t, clock, e.OccurredAtUTC)
		}
	})

	t.Run("append returns the last assigned version", func(t *testing.T) {
		// arrange
		ctx := t.Context()
		sut, _, _ := newStore()

		// act
		first, err1 := sut.Append(ctx, 9, []event.Payload{itemAdded(1), itemAdded(2)}, "")
		second, err2 := sut.Append(ctx, 9, []event.Payload{itemAdded(3)}, "")

		// assert
		assert.NoError(t, err1)
		assert.NoError(t, err2)
		assert.Equal(t, 2, first)
		assert.Equal(t, 3, second)
	})

	t.Run("carts are versioned independently", func(t *testing.T) {
		// arrange
		ctx := t.Context()
		sut, _, _ := newStore()

		// act
		_, _ = sut.Append(ctx, 1, []event.Payload{itemAdded(1), itemAdded(2)}, "")
		_, _ = sut.Append(ctx, 2, []event.Payload{itemAdded(1)}, "")
		_, _ = sut.Append(ctx, 1, []event.Payload{itemAdded(3)}, "")
		_, _ = sut.Append(ctx, 2, []event.Payload{itemAdded(2)}, "")

		// assert
		a, err := sut.Load(ctx, 1)
		assert.NoError(t, err)
		b, err := sut.Load(ctx, 2)
		assert.NoError(t, err)
		assert.EqualSlice(t, []int{1, 2, 3}, versions(a))
		assert.EqualSlice(t, []int{1, 2}, versions(b))
	})

	t.Run("item added then totals recalculated", func(t *testing.T) {
		// arrange
		ctx := t.Context()
		sut, _, _ := newStore()

		// act
		_, err := sut.Append(ctx, 7, []event.Payload{itemAdded(42)}, "")
		assert.NoError(t, err)
		_, err = sut.Append(ctx, 7, []event.Payload{event.TotalsRecalculatedV1{Total: decimal.NewFromInt(5)}}, "")
		assert.NoError(t, err)
		got, err := sut.Load(ctx, 7)

		// assert
		assert.NoError(t, err)
		assert.EqualSlice(t, []int{1, 2}, versions(got))
		assert.Equal(t, event.TypeItemAdded, got[0].EventType())
		assert.Equal(t, event.TypeTotalsRecalculated, got[1].EventType())
	})

	t.Run("append with stale expected version fails with concurrency", func(t *testing.T) {
		// arrange
		ctx := t.Context()
		sut, _, _ := newStore()
		_, err := sut.Append(ctx, 3, []event.Payload{itemAdded(1)}, "")
		assert.NoError(t, err)

		// act
		_, err = sut.AppendExpected(ctx, 3, 0, []event.Payload{itemAdded(2)}, "")

		// assert
		assert.ErrorIs(t, err, repository.ErrConcurrency)
		got, _ := sut.Load(ctx, 3)
		assert.Equal(t, 1, len(got))
	})

	t.Run("concurrent appends never share a version", func(t *testing.T) {
		// arrange
		var (
			ctx = t.Context()
			wg  sync.WaitGroup
			mu  sync.Mutex
			ok  int
		)
		sut, _, _ := newStore()

		// act
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := sut.Append(ctx, 5, []event.Payload{itemAdded(int64(i))}, ""); err == nil {
					mu.Lock()
					ok++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		// assert
		got, err := sut.Load(ctx, 5)
		assert.NoError(t, err)
		assert.Equal(t, ok, len(got))
		for i, e := range got {
			assert.Equal(t, i+1, e.Version)
		}
	})

	t.Run("undecodable records are skipped and reported", func(t *testing.T) {
		// arrange
		ctx := t.Context()
		sut, repo, hook := newStore()
		_, err := sut.Append(ctx, 4, []event.Payload{itemAdded(1)}, "")
		assert.NoError(t, err)
		assert.NoError(t, repo.AppendBatch(ctx, []entity.EventRecord{
			{CartID: 4, Version: 2, EventType: "LegacyThingV0", DataJSON: []byte(`{}`)},
			{CartID: 4, Version: 3, EventType: event.TypeItemAdded, DataJSON: []byte(`{"quantity":"many"}`)},
		}))
		_, err = sut.Append(ctx, 4, []event.Payload{itemAdded(2)}, "")
		assert.NoError(t, err)

		// act
		history, err := sut.LoadHistory(ctx, 4)

		// assert
		assert.NoError(t, err)
		assert.Truef(t, history.Lossy(), "history should be lossy")
		assert.EqualSlice(t, []int{1, 4}, versions(history.Events))
		assert.Equal(t, 2, len(history.Skipped))
		assert.ErrorIs(t, history.Skipped[0].Err, event.ErrUnknownEventType)
		assert.Equal(t, 4, history.Version())
		assert.Equal(t, 2, len(hook.Entries))
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	})

	t.Run("empty append is a no-op", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		sut, _, _ := newStore()

		// act
		version, err := sut.Append(ctx, 8, nil, "")

		// assert
		assert.NoError(t, err)
		assert.Equal(t, 0, version)
	})
}
