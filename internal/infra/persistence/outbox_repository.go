package persistence

import (
	"context"
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
	return r.db.Write(ctx).Create(&msg).Error
}

// Claim locks a batch in one statement. SKIP LOCKED lets concurrent workers
// take disjoint batches without waiting on each other.
func (r *OutboxRepository) Claim(ctx context.Context, workerID string, limit int, now time.Time) ([]entity.OutboxMessage, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
WITH cte AS (
    SELECT message_id
    FROM outbox_messages
    WHERE processed = false
      AND locked_by IS NULL
      AND dead_lettered_at IS NULL
      AND next_attempt_after <= ?
    ORDER BY occurred_on
    LIMIT ?
    FOR UPDATE SKIP LOCKED
)
UPDATE outbox_messages
SET locked_by = ?, locked_at = ?
WHERE message_id IN (SELECT message_id FROM cte)
RETURNING *;
`

	var messages []entity.OutboxMessage
	if err := r.db.Write(ctx).Raw(query, now, limit, workerID, now).Scan(&messages).Error; err != nil {
		return nil, err
	}
	// RETURNING does not keep the CTE order.
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].OccurredOn.Before(messages[j].OccurredOn)
	})
	return messages, nil
}

func (r *OutboxRepository) Complete(ctx context.Context, workerID string, outcomes []repository.OutboxOutcome) error {
	if len(outcomes) == 0 {
		return nil
	}
	return r.db.WithTx(ctx, func(txCtx context.Context) error {
		for _, out := range outcomes {
			updates := map[string]any{
				"locked_by": nil,
				"locked_at": nil,
			}
			if out.Published {
				updates["processed"] = true
				updates["processed_at"] = out.At
			} else {
				updates["retry_count"] = out.RetryCount
				updates["next_attempt_after"] = out.NextAttemptAfter
				updates["last_error"] = out.LastError
				if out.DeadLettered {
					updates["dead_lettered_at"] = out.At
				}
			}
			err := r.db.Write(txCtx).
				Model(&entity.OutboxMessage{}).
				Where("message_id = ? AND locked_by = ?", out.MessageID, workerID).
				Updates(updates).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *OutboxRepository) ReleaseStale(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.Write(ctx).
		Model(&entity.OutboxMessage{}).
		Where("processed = false AND locked_by IS NOT NULL AND locked_at < ?", cutoff).
		Updates(map[string]any{"locked_by": nil, "locked_at": nil})
	return res.RowsAffected, res.Error
}
