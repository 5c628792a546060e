package kafka

import (
	"context"
	"errors"
	"log/slog"
	"stock-alert/common/constant"

	"github.com/segmentio/kafka-go"
)

type MessageHandler func(ctx context.Context, key, value []byte) error

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads one topic as a member of a consumer group. Offsets are
// committed only after the handler returns, so a crash mid-handler redelivers.
type Consumer struct {
	reader messageReader
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{reader: reader}
}

func (c *Consumer) Consume(ctx context.Context, handler MessageHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			slog.ErrorContext(ctx, "Error fetching message", slog.Any(constant.LogFieldErr, err))
			continue
		}

		if err := handler(ctx, msg.Key, msg.Value); err != nil {
			slog.ErrorContext(ctx, "Error handling message",
				slog.Any(constant.LogFieldErr, err),
				slog.String("key", string(msg.Key)),
				slog.String("topic", msg.Topic),
			)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "Error committing message",
				slog.Any(constant.LogFieldErr, err),
				slog.Any(constant.LogFieldPayload, string(msg.Value)),
				slog.String("topic", msg.Topic),
			)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
