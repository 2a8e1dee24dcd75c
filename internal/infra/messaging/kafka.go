package messaging

import (
	"context"
	"errors"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/config"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/outbox"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes outbox messages to one topic keyed by message id.
type KafkaPublisher struct {
	writer *kafka.Writer
}

var _ outbox.Publisher = (*KafkaPublisher)(nil)

func NewKafka(cfg config.Kafka) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return nil, errors.New("kafka: brokers and topic are required")
	}
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           cfg.BatchTimeout,
		WriteTimeout:           cfg.WriteTimeout,
	}}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, msg outbox.Message) error {
	return p.writer.WriteMessages(ctx, kafkaMessage(msg))
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func kafkaMessage(msg outbox.Message) kafka.Message {
	return kafka.Message{
		Key:   []byte(msg.ID.String()),
		Value: msg.Content,
		Time:  msg.OccurredOn,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(msg.Type)},
			{Key: "destination", Value: []byte(msg.Destination)},
		},
	}
}
