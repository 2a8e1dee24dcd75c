// Package eventstore keeps the append-only log of cart domain events.
//
// Versions are assigned per cart as count+1, count+2, ... at append time and
// are guarded by a unique (cart_id, version) constraint, so two writers that
// computed the same next version cannot both succeed. The loser gets
// repository.ErrConcurrency and is expected to retry its unit of work.
//
// Records that cannot be decoded are skipped on load and reported in the
// returned History. Such a history is lossy: replaying it rebuilds the cart
// with a gap, which operators must treat as a data-loss incident.
package eventstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/event"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/metrics"
	"github.com/sirupsen/logrus"
)

type Store struct {
	repo repository.EventRepository
	log  logrus.FieldLogger
	now  func() time.Time
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(repo repository.EventRepository, log logrus.FieldLogger, opts ...Option) *Store {
	s := &Store{repo: repo, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Version returns the current stream version of a cart.
func (s *Store) Version(ctx context.Context, cartID int64) (int, error) {
	version, err := s.repo.CurrentVersion(ctx, cartID)
	if err != nil {
		return 0, fmt.Errorf("%w: version of cart %d: %w", repository.ErrPersistence, cartID, err)
	}
	return version, nil
}

// Append stores payloads as the next events of the cart and returns the last
// assigned version. Nothing is stored when it fails.
func (s *Store) Append(ctx context.Context, cartID int64, payloads []event.Payload, causedBy string) (int, error) {
	current, err := s.Version(ctx, cartID)
	if err != nil {
		return 0, err
	}
	return s.append(ctx, cartID, current, payloads, causedBy)
}

// AppendExpected is Append with an optimistic precondition: the cart must
// still be at expectedVersion.
func (s *Store) AppendExpected(ctx context.Context, cartID int64, expectedVersion int, payloads []event.Payload, causedBy string) (int, error) {
	current, err := s.Version(ctx, cartID)
	if err != nil {
		return 0, err
	}
	if current != expectedVersion {
		metrics.AppendConflicts.Inc()
		return 0, fmt.Errorf("%w: cart %d is at version %d, expected %d", repository.ErrConcurrency, cartID, current, expectedVersion)
	}
	return s.append(ctx, cartID, current, payloads, causedBy)
}

func (s *Store) append(ctx context.Context, cartID int64, current int, payloads []event.Payload, causedBy string) (int, error) {
	if len(payloads) == 0 {
		return current, nil
	}

	now := s.now().UTC()
	records := make([]entity.EventRecord, 0, len(payloads))
	for i, p := range payloads {
		eventType, data, err := event.Encode(p)
		if err != nil {
			return 0, fmt.Errorf("%w: cart %d: %w", repository.ErrPersistence, cartID, err)
		}
		records = append(records, entity.EventRecord{
			CartID:       cartID,
			Version:      current + i + 1,
			EventType:    eventType,
			DataJSON:     data,
			CreatedAtUTC: now,
			CreatedBy:    causedBy,
		})
	}

	if err := s.repo.AppendBatch(ctx, records); err != nil {
		if errors.Is(err, repository.ErrConcurrency) {
			metrics.AppendConflicts.Inc()
			return 0, err
		}
		return 0, fmt.Errorf("%w: append to cart %d: %w", repository.ErrPersistence, cartID, err)
	}

	metrics.EventsAppended.Add(float64(len(records)))
	return current + len(records), nil
}

// Load returns the decodable events of a cart in append order.
func (s *Store) Load(ctx context.Context, cartID int64) ([]event.Envelope, error) {
	history, err := s.LoadHistory(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return history.Events, nil
}

func (s *Store) LoadHistory(ctx context.Context, cartID int64) (History, error) {
	records, err := s.repo.ListByCart(ctx, cartID)
	if err != nil {
		return History{}, fmt.Errorf("%w: load cart %d: %w", repository.ErrPersistence, cartID, err)
	}

	history := History{CartID: cartID, Events: make([]event.Envelope, 0, len(records))}
	for _, rec := range records {
		payload, err := event.Decode(rec.EventType, rec.DataJSON)
		if err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"cart_id":    rec.CartID,
				"record_id":  rec.ID,
				"version":    rec.Version,
				"event_type": rec.EventType,
			}).Warn("eventstore: skipping undecodable event record")
			metrics.EventsSkipped.WithLabelValues(rec.EventType).Inc()
			history.Skipped = append(history.Skipped, SkippedRecord{
				RecordID:  rec.ID,
				Version:   rec.Version,
				EventType: rec.EventType,
				Err:       err,
			})
			continue
		}
		history.Events = append(history.Events, event.Envelope{
			CartID:        rec.CartID,
			Version:       rec.Version,
			OccurredAtUTC: rec.CreatedAtUTC.UTC(),
			CausedBy:      rec.CreatedBy,
			Payload:       payload,
		})
	}
	return history, nil
}

func (s *Store) CartIDs(ctx context.Context) ([]int64, error) {
	ids, err := s.repo.CartIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list carts: %w", repository.ErrPersistence, err)
	}
	return ids, nil
}
