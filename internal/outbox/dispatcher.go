package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/metrics"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Message is what a Publisher hands to the broker.
type Message struct {
	ID          uuid.UUID
	Type        string
	Destination string
	Content     []byte
	OccurredOn  time.Time
}

//go:generate go tool moq -rm -pkg outbox_test -out mocks_test.go . Publisher

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

type Stats struct {
	Released     int64
	Claimed      int
	Published    int
	Failed       int
	DeadLettered int
}

type Dispatcher struct {
	repo      repository.OutboxRepository
	publisher Publisher
	log       logrus.FieldLogger
	cfg       *Config
}

func NewDispatcher(repo repository.OutboxRepository, publisher Publisher, log logrus.FieldLogger, opts ...Option) *Dispatcher {
	return &Dispatcher{
		repo:      repo,
		publisher: publisher,
		log:       log,
		cfg:       applyOptions(defaultOptions(), opts...),
	}
}

func (d *Dispatcher) WorkerID() string {
	return d.cfg.workerID
}

// Run polls until ctx is cancelled. A failed poll is logged and the loop
// carries on with the next one.
func (d *Dispatcher) Run(ctx context.Context) error {
	log := d.log.WithField("worker_id", d.cfg.workerID)
	log.Infof("outbox: dispatcher started (batch=%d, interval=%s)", d.cfg.batchSize, d.cfg.interval)

	ticker := time.NewTicker(d.cfg.interval)
	defer ticker.Stop()

	for {
		if _, err := d.poll(ctx); err != nil && ctx.Err() == nil {
			log.WithError(err).Warn("outbox: poll failed")
		}
		select {
		case <-ctx.Done():
			log.Info("outbox: dispatcher stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (d *Dispatcher) poll(ctx context.Context) (stats Stats, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("outbox: poll panicked: %v", r)
		}
	}()
	return d.PollOnce(ctx)
}

// PollOnce runs a single claim, publish and complete cycle.
func (d *Dispatcher) PollOnce(ctx context.Context) (Stats, error) {
	var stats Stats
	now := d.cfg.now().UTC()

	if d.cfg.lockTimeout > 0 {
		released, err := d.repo.ReleaseStale(ctx, now.Add(-d.cfg.lockTimeout))
		if err != nil {
			return stats, fmt.Errorf("outbox: release stale locks: %w", err)
		}
		if released > 0 {
			stats.Released = released
			metrics.OutboxStaleReleased.Add(float64(released))
			d.log.WithField("released", released).Warn("outbox: released stale claims")
		}
	}

	msgs, err := d.repo.Claim(ctx, d.cfg.workerID, d.cfg.batchSize, now)
	if err != nil {
		return stats, fmt.Errorf("outbox: claim: %w", err)
	}
	stats.Claimed = len(msgs)
	metrics.OutboxClaimed.Observe(float64(len(msgs)))
	if len(msgs) == 0 {
		return stats, nil
	}

	outcomes := make([]repository.OutboxOutcome, 0, len(msgs))
	for _, msg := range msgs {
		if ctx.Err() != nil {
			break
		}
		out := d.deliver(ctx, msg)
		switch {
		case out.Published:
			stats.Published++
		case out.DeadLettered:
			stats.Failed++
			stats.DeadLettered++
		default:
			stats.Failed++
		}
		outcomes = append(outcomes, out)
	}
	if len(outcomes) == 0 {
		return stats, nil
	}

	// Outcomes already produced are kept even when ctx is cancelled; the rest
	// of the batch stays claimed until the stale lock sweep.
	if err := d.repo.Complete(context.WithoutCancel(ctx), d.cfg.workerID, outcomes); err != nil {
		return stats, fmt.Errorf("outbox: complete batch: %w", err)
	}
	return stats, nil
}

func (d *Dispatcher) deliver(ctx context.Context, msg entity.OutboxMessage) repository.OutboxOutcome {
	err := d.publisher.Publish(ctx, Message{
		ID:          msg.MessageID,
		Type:        msg.Type,
		Destination: msg.Destination,
		Content:     msg.Content,
		OccurredOn:  msg.OccurredOn,
	})
	at := d.cfg.now().UTC()
	if err == nil {
		metrics.OutboxPublished.Inc()
		return repository.OutboxOutcome{MessageID: msg.MessageID, Published: true, RetryCount: msg.RetryCount, At: at}
	}

	retries := msg.RetryCount + 1
	out := repository.OutboxOutcome{
		MessageID:        msg.MessageID,
		RetryCount:       retries,
		NextAttemptAfter: at.Add(d.cfg.backoff(retries)),
		LastError:        err.Error(),
		At:               at,
	}
	log := d.log.WithError(err).WithFields(logrus.Fields{
		"message_id":  msg.MessageID,
		"type":        msg.Type,
		"destination": msg.Destination,
		"retries":     retries,
	})
	metrics.OutboxFailed.Inc()
	if d.cfg.maxAttempts > 0 && retries >= d.cfg.maxAttempts {
		out.DeadLettered = true
		metrics.OutboxDeadLettered.Inc()
		log.Error("outbox: publish failed, message dead-lettered")
		return out
	}
	log.Warn("outbox: publish failed, will retry")
	return out
}
