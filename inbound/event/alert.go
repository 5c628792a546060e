package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"stock-alert/common"
	"stock-alert/common/constant"
	"stock-alert/common/otel"
	"stock-alert/model"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/message"
)

//go:generate mockgen -destination=mocks/mock_alert.go -package=mocks stock-alert/inbound/event AlertNotifier

type AlertNotifier interface {
	PushAlert(ctx context.Context, chatID int64, text string)
}

type AlertEvent struct {
	Notifier AlertNotifier
	ChatID   int64
	Printer  *message.Printer
	Timeout  time.Duration
}

// LowStockHandler turns one low-stock event into an operator alert. It always
// returns nil: a broken payload is discarded and push failures stay inside the
// notifier, so the message is acknowledged either way.
func (in AlertEvent) LowStockHandler(ctx context.Context, msg []byte) error {
	if in.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, in.Timeout)
		defer cancel()
	}

	var req model.ProductSnapshot
	err := json.Unmarshal(msg, &req)
	if err != nil {
		slog.WarnContext(ctx, "low stock event unmarshal error", slog.Any(constant.LogFieldErr, err), slog.String(constant.LogFieldPayload, string(msg)))
		return nil
	}

	ctx, span := otel.Tracer.Start(ctx, "AlertEvent.LowStockHandler")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", req.ID))

	slog.InfoContext(ctx, "low stock event receive request", slog.Int64(constant.LogFieldProductId, req.ID), common.ExtractTraceIDFromCtx(ctx))

	in.Notifier.PushAlert(ctx, in.ChatID, in.FormatAlert(req))
	return nil
}

func (in AlertEvent) FormatAlert(product model.ProductSnapshot) string {
	return fmt.Sprintf(constant.AlertLowStockTemplate,
		product.ID, product.NameRu, product.NameEn, common.FormatQuantity(in.Printer, product.StockQuantity))
}
