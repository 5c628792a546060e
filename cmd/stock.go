package cmd

import (
	"context"
	"log/slog"
	"stock-alert/inbound/cron"
	"stock-alert/outbound/sqlgen"
)

func runCronStockCmd(ctx context.Context) {
	cfg := newCfg("env")

	stopProfiling := startProfiling(cfg, "stock")
	defer stopProfiling()

	shutdownTracer := initTracer(ctx, cfg)
	defer shutdownTracer()

	db := newDb(cfg)
	defer db.Close()

	cacheClient := newRedis(cfg)
	defer cacheClient.Close()

	publisher, closePublisher := newPublisher(ctx, cfg)
	defer closePublisher()

	stockCron := &cron.StockCron{
		Querier:   sqlgen.New(db),
		Cache:     cacheClient,
		Publisher: publisher,
		Threshold: int32(cfg.Stock.Threshold),
		Interval:  cfg.Cron.Stock.Interval,
		Timeout:   cfg.Cron.Stock.Timeout,
	}

	slog.InfoContext(ctx, "stock cron starting", slog.String("driver", cfg.Channel.Driver), slog.String("channel", cfg.Channel.Name))

	stockCron.Start(ctx)
}
