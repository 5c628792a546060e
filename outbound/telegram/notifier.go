package telegram

import (
	"context"
	"log/slog"
	"stock-alert/common"
	"stock-alert/common/constant"
	"stock-alert/common/otel"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
)

// Notifier owns every outbound chat message. Sends are fire-and-forget: a
// failure is logged and dropped, never returned or retried.
type Notifier struct {
	Sender  Sender
	Limiter *rate.Limiter
}

func NewNotifier(sender Sender, perSecond float64, burst int) *Notifier {
	return &Notifier{
		Sender:  sender,
		Limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// PushAlert delivers an automated alert to the operator chat.
func (out *Notifier) PushAlert(ctx context.Context, chatID int64, text string) {
	if out.Send(ctx, chatID, text) {
		slog.InfoContext(ctx, "sent notification", slog.Int64(constant.LogFieldChatId, chatID), slog.String("text", text))
	}
}

// Send reports whether the message left the process.
func (out *Notifier) Send(ctx context.Context, chatID int64, text string) bool {
	ctx, span := otel.Tracer.Start(ctx, "Notifier.Send")
	defer span.End()

	span.SetAttributes(attribute.Int64("chat.id", chatID))

	if out.Limiter != nil {
		if err := out.Limiter.Wait(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to send message to chat", slog.Int64(constant.LogFieldChatId, chatID), slog.Any(constant.LogFieldErr, err))
			common.UtilSpanError(span, err)
			return false
		}
	}

	if err := out.Sender.SendText(chatID, text); err != nil {
		slog.ErrorContext(ctx, "failed to send message to chat", slog.Int64(constant.LogFieldChatId, chatID), slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		return false
	}

	return true
}
