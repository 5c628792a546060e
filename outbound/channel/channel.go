package channel

import (
	"context"
	"fmt"
	"stock-alert/common"
	"stock-alert/model"
	"strconv"
)

//go:generate mockgen -destination=mocks/mock_channel.go -package=mocks stock-alert/outbound/channel Publisher

// Publisher sends one encoded message under an ordering key. A nil error only
// means the channel accepted the message.
type Publisher interface {
	Publish(ctx context.Context, key string, data []byte) error
}

// LowStockPublisher turns product snapshots into low-stock events keyed by product id.
type LowStockPublisher struct {
	Channel Publisher
}

func (out LowStockPublisher) Publish(ctx context.Context, product model.ProductSnapshot) error {
	if err := common.PublishMessage(ctx, out.Channel, Key(product.ID), product); err != nil {
		return fmt.Errorf("publish low stock event for product %d: %w", product.ID, err)
	}

	return nil
}

func Key(productID int64) string {
	return strconv.FormatInt(productID, 10)
}
