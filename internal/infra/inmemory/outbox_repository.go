package inmemory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
)

type OutboxRepository struct {
	db *DB
}

var _ repository.OutboxRepository = (*OutboxRepository)(nil)

func NewOutboxRepository(db *DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) Add(ctx context.Context, msg entity.OutboxMessage) error {
	defer r.db.lock(ctx)()
	if _, ok := r.db.state.outbox[msg.MessageID]; ok {
		return fmt.Errorf("%w: outbox message %s", repository.ErrDuplicate, msg.MessageID)
	}
	r.db.state.outbox[msg.MessageID] = msg
	return nil
}

func (r *OutboxRepository) Claim(ctx context.Context, workerID string, limit int, now time.Time) ([]entity.OutboxMessage, error) {
	defer r.db.lock(ctx)()
	var candidates []entity.OutboxMessage
	for _, msg := range r.db.state.outbox {
		if msg.Claimable(now) {
			candidates = append(candidates, msg)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].OccurredOn.Before(candidates[j].OccurredOn)
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	lockedAt := now
	for i := range candidates {
		owner := workerID
		candidates[i].LockedBy = &owner
		candidates[i].LockedAt = &lockedAt
		r.db.state.outbox[candidates[i].MessageID] = candidates[i]
	}
	return candidates, nil
}

func (r *OutboxRepository) Complete(ctx context.Context, workerID string, outcomes []repository.OutboxOutcome) error {
	defer r.db.lock(ctx)()
	for _, out := range outcomes {
		msg, ok := r.db.state.outbox[out.MessageID]
		if !ok || msg.LockedBy == nil || *msg.LockedBy != workerID {
			continue
		}
		msg.LockedBy = nil
		msg.LockedAt = nil
		if out.Published {
			at := out.At
			msg.Processed = true
			msg.ProcessedAt = &at
		} else {
			msg.RetryCount = out.RetryCount
			msg.NextAttemptAfter = out.NextAttemptAfter
			msg.LastError = out.LastError
			if out.DeadLettered {
				at := out.At
				msg.DeadLetteredAt = &at
			}
		}
		r.db.state.outbox[out.MessageID] = msg
	}
	return nil
}

func (r *OutboxRepository) ReleaseStale(ctx context.Context, cutoff time.Time) (int64, error) {
	defer r.db.lock(ctx)()
	var released int64
	for id, msg := range r.db.state.outbox {
		if msg.Processed || msg.LockedBy == nil || msg.LockedAt == nil || !msg.LockedAt.Before(cutoff) {
			continue
		}
		msg.LockedBy = nil
		msg.LockedAt = nil
		r.db.state.outbox[id] = msg
		released++
	}
	return released, nil
}

// Messages returns a copy of the outbox table ordered by OccurredOn.
func (r *OutboxRepository) Messages(ctx context.Context) []entity.OutboxMessage {
	defer r.db.lock(ctx)()
	out := make([]entity.OutboxMessage, 0, len(r.db.state.outbox))
	for _, msg := range r.db.state.outbox {
		out = append(out, msg)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OccurredOn.Before(out[j].OccurredOn)
	})
	return out
}
