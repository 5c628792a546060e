package common

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"stock-alert/common/constant"
	"stock-alert/common/errs"
	"stock-alert/common/otel"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/message"
)

// KeyedPublisher sends an encoded message to the channel under an ordering key.
type KeyedPublisher interface {
	Publish(ctx context.Context, key string, data []byte) error
}

func ExtractTraceIDFromCtx(ctx context.Context) slog.Attr {
	span := trace.SpanFromContext(ctx)
	traceId := ""

	if span != nil && span.SpanContext().HasTraceID() {
		traceId = span.SpanContext().TraceID().String()
	} else {
		traceId = ulid.Make().String()
	}

	return slog.Any(constant.LogFieldTraceId, traceId)
}

func UtilSpanError(span trace.Span, err error) {
	if err == nil {
		return
	}

	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}

func PublishMessage(ctx context.Context, publisher KeyedPublisher, key string, body any) error {
	ctx, span := otel.Tracer.Start(ctx, "publishMessage")
	defer span.End()

	span.SetAttributes(attribute.String("messaging.message.key", key))

	traceIdAttr := ExtractTraceIDFromCtx(ctx)

	data, err := json.Marshal(body)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal message", traceIdAttr, slog.String("key", key), slog.Any(constant.LogFieldErr, err))
		UtilSpanError(span, err)
		return fmt.Errorf("%w: %w", errs.ErrEncodeMessage, err)
	}

	err = publisher.Publish(ctx, key, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish message", traceIdAttr, slog.String("key", key), slog.Any(constant.LogFieldErr, err))
		UtilSpanError(span, err)
		return err
	}

	return nil
}

// FormatQuantity renders a stock quantity with the printer's digit grouping.
// A nil printer falls back to plain decimal output.
func FormatQuantity(printer *message.Printer, quantity int32) string {
	if printer == nil {
		return fmt.Sprintf("%d", quantity)
	}

	return printer.Sprintf("%d", quantity)
}
