package jetstream

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
)

// Subject returns the per-key subject inside a channel stream.
func Subject(channel, key string) string {
	return fmt.Sprintf("%s.%s", channel, key)
}

func Wildcard(channel string) string {
	return channel + ".>"
}

func CreateQueueStream(ctx context.Context, js jetstream.JetStream, channel string) (jetstream.Stream, error) {
	cfg := jetstream.StreamConfig{
		Name:      channel,
		Retention: jetstream.WorkQueuePolicy,
		Subjects:  []string{Wildcard(channel)},
		MaxBytes:  5 * 1024 * 1024,
	}

	st, err := js.CreateOrUpdateStream(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create stream %s: %w", channel, err)
	}

	return st, nil
}
