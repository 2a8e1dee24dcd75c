package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/config"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/infra/messaging"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

type AuditRecorder interface {
	Record(ctx context.Context, messageID, eventType string, payload []byte) (bool, error)
}

// Consume writes every cart message from JetStream into the audit log. A
// redelivered message is recognised by its message id and only acked.
func Consume(ctx context.Context, cfg config.Config) error {
	log, err := BuildLogger(cfg)
	if err != nil {
		return err
	}

	client, err := messaging.NewNATS(ctx, cfg.NATS)
	if err != nil {
		return err
	}
	defer client.Close()
	js := client.JetStream()

	app, err := Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := ensureConsumer(ctx, cfg.NATS, js); err != nil {
		return fmt.Errorf("consumer config: %w", err)
	}

	log.Infof("consumer: listening on %s (durable=%s)", cfg.NATS.ConsumerSubject, cfg.NATS.ConsumerDurable)
	sub, err := js.PullSubscribe(
		cfg.NATS.ConsumerSubject,
		cfg.NATS.ConsumerDurable,
		nats.Bind(cfg.NATS.Stream, cfg.NATS.ConsumerDurable),
	)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		msgs, err := sub.Fetch(50, nats.MaxWait(2*time.Second))
		if err != nil {
			if errors.Is(err, nats.ErrTimeout) || ctx.Err() != nil {
				continue
			}
			log.WithError(err).Warn("consumer: fetch failed")
			continue
		}
		for _, msg := range msgs {
			entry := log.WithField("subject", msg.Subject)
			inserted, err := recordDelivery(ctx, app.Audit, msg)
			if err != nil {
				entry.WithError(err).Warn("consumer: audit log insert failed")
				handleConsumerError(ctx, cfg.NATS, client, msg, entry)
				continue
			}
			if !inserted {
				entry.Debug("consumer: duplicate delivery acked")
			}
			_ = msg.Ack()
		}
	}
}

func recordDelivery(ctx context.Context, audit AuditRecorder, msg *nats.Msg) (bool, error) {
	id := msg.Header.Get(nats.MsgIdHdr)
	if id == "" {
		md, err := msg.Metadata()
		if err != nil {
			return false, fmt.Errorf("message without id: %w", err)
		}
		id = fmt.Sprintf("%s-%d", md.Stream, md.Sequence.Stream)
	}
	return audit.Record(ctx, id, msg.Subject, msg.Data)
}

func ensureConsumer(ctx context.Context, cfg config.NATS, js nats.JetStreamContext) error {
	if cfg.Stream == "" {
		return errors.New("nats stream is required")
	}
	if cfg.ConsumerDurable == "" {
		return errors.New("nats consumer durable is required")
	}
	if cfg.ConsumerSubject == "" {
		return errors.New("nats consumer subject is required")
	}

	info, err := js.ConsumerInfo(cfg.Stream, cfg.ConsumerDurable, nats.Context(ctx))
	if err != nil && !errors.Is(err, nats.ErrConsumerNotFound) {
		return err
	}

	maxDeliver := cfg.ConsumerMaxDeliver
	if maxDeliver <= 0 {
		maxDeliver = -1
	}

	if info != nil {
		if info.Config.MaxDeliver != maxDeliver || !slices.Equal(info.Config.BackOff, cfg.ConsumerBackoff) {
			if err := js.DeleteConsumer(cfg.Stream, cfg.ConsumerDurable, nats.Context(ctx)); err != nil {
				return err
			}
			info = nil
		}
	}

	if info == nil {
		consumerCfg := &nats.ConsumerConfig{
			Durable:       cfg.ConsumerDurable,
			AckPolicy:     nats.AckExplicitPolicy,
			AckWait:       cfg.AckWait,
			MaxAckPending: cfg.MaxAckPending,
			MaxDeliver:    maxDeliver,
			FilterSubject: cfg.ConsumerSubject,
		}
		if len(cfg.ConsumerBackoff) > 0 {
			consumerCfg.BackOff = cfg.ConsumerBackoff
		}
		if _, err := js.AddConsumer(cfg.Stream, consumerCfg, nats.Context(ctx)); err != nil {
			return err
		}
	}
	return nil
}

// handleConsumerError naks a failed message with backoff. Once the delivery
// budget is spent the message is parked on the DLQ subject and acked.
func handleConsumerError(ctx context.Context, cfg config.NATS, client *messaging.NATSClient, msg *nats.Msg, log logrus.FieldLogger) {
	md, err := msg.Metadata()
	if err != nil {
		log.WithError(err).Warn("consumer: metadata missing")
		_ = msg.Nak()
		return
	}
	maxDeliver := cfg.ConsumerMaxDeliver
	if maxDeliver <= 0 {
		maxDeliver = 10
	}
	if int(md.NumDelivered) >= maxDeliver {
		if cfg.DLQSubject != "" {
			subject := cfg.DLQSubject + "." + msg.Subject
			if err := client.PublishRaw(ctx, subject, msg.Data, fmt.Sprintf("dlq-%d", md.Sequence.Stream)); err != nil {
				log.WithError(err).Warn("consumer: dlq publish failed")
				_ = msg.Nak()
				return
			}
		} else {
			log.Warn("consumer: dlq subject not configured")
		}
		_ = msg.Ack()
		return
	}
	if delay := backoffForAttempt(cfg.ConsumerBackoff, md.NumDelivered); delay > 0 {
		_ = msg.NakWithDelay(delay)
		return
	}
	_ = msg.Nak()
}

func backoffForAttempt(backoff []time.Duration, delivered uint64) time.Duration {
	if len(backoff) == 0 {
		return 0
	}
	idx := int(delivered) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(backoff) {
		idx = len(backoff) - 1
	}
	return backoff[idx]
}
