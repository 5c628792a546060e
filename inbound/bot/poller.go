package bot

import (
	"context"
	"log/slog"
	"stock-alert/common/constant"
	"stock-alert/model"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/semaphore"
)

type CommandHandler interface {
	OnCommand(ctx context.Context, cmd model.ChatCommand)
}

// Poller fans long-poll updates out to the command handler, at most Workers at a time.
type Poller struct {
	Handler CommandHandler
	Workers int64
	Timeout time.Duration
}

func (in Poller) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	workers := in.Workers
	if workers <= 0 {
		workers = 1
	}

	sem := semaphore.NewWeighted(workers)
	var wg sync.WaitGroup
	defer wg.Wait()

	slog.Info("chat command poller started", slog.Int64("workers", workers))

	for {
		select {
		case <-ctx.Done():
			slog.Info("chat command poller stopped")
			return
		case update, ok := <-updates:
			if !ok {
				slog.Info("chat update channel closed")
				return
			}

			cmd, ok := toChatCommand(update)
			if !ok {
				continue
			}

			if err := sem.Acquire(ctx, 1); err != nil {
				slog.Info("chat command poller stopped")
				return
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				defer sem.Release(1)

				in.handle(ctx, cmd)
			}()
		}
	}
}

func (in Poller) handle(ctx context.Context, cmd model.ChatCommand) {
	if in.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, in.Timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "chat command handler panic", slog.Int64(constant.LogFieldChatId, cmd.ChatID), slog.Any(constant.LogFieldErr, r))
		}
	}()

	in.Handler.OnCommand(ctx, cmd)
}

func toChatCommand(update tgbotapi.Update) (model.ChatCommand, bool) {
	if update.Message == nil || update.Message.Text == "" || update.Message.Chat == nil {
		return model.ChatCommand{}, false
	}

	return model.ChatCommand{ChatID: update.Message.Chat.ID, Text: update.Message.Text}, true
}
