// Package outbox queues integration messages next to the state change that
// produced them and delivers them to the broker at least once.
package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"github.com/google/uuid"
)

const DefaultDestination = "default"

type Outbox struct {
	repo repository.OutboxRepository
	now  func() time.Time
}

func New(repo repository.OutboxRepository) *Outbox {
	return &Outbox{repo: repo, now: time.Now}
}

// Enqueue stores a message in the unit of work carried by ctx. An empty
// destination means DefaultDestination.
func (o *Outbox) Enqueue(ctx context.Context, msgType string, payload any, destination string) (uuid.UUID, error) {
	if msgType == "" {
		return uuid.Nil, fmt.Errorf("%w: outbox message type is required", repository.ErrValidation)
	}
	if destination == "" {
		destination = DefaultDestination
	}
	content, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("outbox: encode %s: %w", msgType, err)
	}

	now := o.now().UTC()
	msg := entity.OutboxMessage{
		MessageID:        uuid.New(),
		Type:             msgType,
		Destination:      destination,
		Content:          content,
		OccurredOn:       now,
		NextAttemptAfter: now,
	}
	if err := o.repo.Add(ctx, msg); err != nil {
		return uuid.Nil, fmt.Errorf("%w: enqueue %s: %w", repository.ErrPersistence, msgType, err)
	}
	return msg.MessageID, nil
}
