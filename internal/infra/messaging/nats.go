package messaging

import (
	"context"
	"errors"
	"slices"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/config"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/outbox"
	"github.com/nats-io/nats.go"
)

type NATSClient struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	cfg  config.NATS
}

var _ outbox.Publisher = (*NATSClient)(nil)

func NewNATS(ctx context.Context, cfg config.NATS) (*NATSClient, error) {
	if cfg.URL == "" {
		return nil, errors.New("nats: url is required")
	}
	if cfg.Stream == "" || len(cfg.Subjects) == 0 {
		return nil, errors.New("nats: stream and subjects are required")
	}

	conn, err := nats.Connect(cfg.URL, nats.Name("cart-service"))
	if err != nil {
		return nil, err
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ensureStream(ctx, js, cfg); err != nil {
		conn.Close()
		return nil, err
	}

	return &NATSClient{conn: conn, js: js, cfg: cfg}, nil
}

func (c *NATSClient) Close() {
	if c == nil || c.conn == nil {
		return
	}
	c.conn.Close()
}

func (c *NATSClient) JetStream() nats.JetStreamContext {
	if c == nil {
		return nil
	}
	return c.js
}

// Publish sends an outbox message. The message id becomes the JetStream
// dedup id, so a redelivery inside the stream's duplicate window is dropped.
func (c *NATSClient) Publish(ctx context.Context, msg outbox.Message) error {
	return c.PublishRaw(ctx, Subject(msg), msg.Content, msg.ID.String())
}

func (c *NATSClient) PublishRaw(ctx context.Context, subject string, payload []byte, msgID string) error {
	if c == nil || c.js == nil {
		return errors.New("nats: jetstream not initialized")
	}
	m := nats.NewMsg(subject)
	m.Data = payload
	if msgID != "" {
		m.Header.Set(nats.MsgIdHdr, msgID)
	}
	_, err := c.js.PublishMsg(m, nats.Context(ctx))
	return err
}

// Subject maps a message to its NATS subject: the type for the default
// destination, otherwise destination.type.
func Subject(msg outbox.Message) string {
	if msg.Destination == "" || msg.Destination == outbox.DefaultDestination {
		return msg.Type
	}
	return msg.Destination + "." + msg.Type
}

func ensureStream(ctx context.Context, js nats.JetStreamContext, cfg config.NATS) error {
	info, err := js.StreamInfo(cfg.Stream, nats.Context(ctx))
	if err == nil {
		if !sameSubjects(info.Config.Subjects, cfg.Subjects) {
			info.Config.Subjects = cfg.Subjects
			_, err = js.UpdateStream(&info.Config, nats.Context(ctx))
		}
		return err
	}

	if errors.Is(err, nats.ErrStreamNotFound) {
		_, err = js.AddStream(&nats.StreamConfig{
			Name:      cfg.Stream,
			Subjects:  cfg.Subjects,
			Storage:   nats.FileStorage,
			Retention: nats.LimitsPolicy,
		}, nats.Context(ctx))
		return err
	}
	return err
}

func sameSubjects(a, b []string) bool {
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}
