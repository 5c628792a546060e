package channel

import (
	"context"
	commonJs "stock-alert/common/jetstream"

	"github.com/nats-io/nats.go/jetstream"
)

type jsPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// JetStreamPublisher maps the key onto a subject token so that every product
// has its own ordered subject inside the channel stream.
type JetStreamPublisher struct {
	JS      jsPublisher
	Channel string
}

func (out JetStreamPublisher) Publish(ctx context.Context, key string, data []byte) error {
	_, err := out.JS.Publish(ctx, commonJs.Subject(out.Channel, key), data)
	return err
}
