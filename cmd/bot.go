package cmd

import (
	"context"
	"log/slog"
	"stock-alert/inbound/bot"
	"stock-alert/outbound/catalog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func runBotCmd(ctx context.Context) {
	cfg := newCfg("env")

	stopProfiling := startProfiling(cfg, "bot")
	defer stopProfiling()

	shutdownTracer := initTracer(ctx, cfg)
	defer shutdownTracer()

	botApi := newBot(cfg)

	commandBot := bot.CommandBot{
		Catalog: catalog.NewClient(cfg.Catalog.BaseUrl, cfg.Catalog.Timeout),
		Replier: newNotifier(botApi, cfg),
		Printer: message.NewPrinter(language.Russian),
	}

	poller := bot.Poller{
		Handler: commandBot,
		Workers: cfg.Telegram.Workers,
		Timeout: cfg.Telegram.CommandTimeout,
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.Telegram.PollTimeout

	updates := botApi.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		botApi.StopReceivingUpdates()
	}()

	slog.InfoContext(ctx, "chat bot started", slog.String("username", botApi.Self.UserName))

	poller.Run(ctx, updates)

	slog.InfoContext(ctx, "chat bot stopped")
}
