// Package messaging connects the outbox dispatcher to a broker.
package messaging

import (
	"context"
	"fmt"
	"io"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/config"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/outbox"
	"github.com/sirupsen/logrus"
)

// LogPublisher only logs messages. It backs local runs without a broker.
type LogPublisher struct {
	log logrus.FieldLogger
}

func NewLogPublisher(log logrus.FieldLogger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, msg outbox.Message) error {
	p.log.WithFields(logrus.Fields{
		"message_id":  msg.ID,
		"type":        msg.Type,
		"destination": msg.Destination,
		"bytes":       len(msg.Content),
	}).Info("outbox message published")
	return ctx.Err()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type natsCloser struct{ c *NATSClient }

func (n natsCloser) Close() error {
	n.c.Close()
	return nil
}

// NewPublisher builds the publisher selected by broker.driver. The returned
// closer releases the broker connection.
func NewPublisher(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (outbox.Publisher, io.Closer, error) {
	switch cfg.Broker.Driver {
	case "nats":
		client, err := NewNATS(ctx, cfg.NATS)
		if err != nil {
			return nil, nil, err
		}
		return client, natsCloser{client}, nil
	case "kafka":
		p, err := NewKafka(cfg.Kafka)
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil
	case "log":
		return NewLogPublisher(log), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("messaging: unknown broker driver %q", cfg.Broker.Driver)
	}
}
