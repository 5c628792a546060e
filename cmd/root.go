package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func Start() {
	cfg := newCfg("env")
	slog.SetLogLoggerLevel(slog.Level(cfg.Log.Level))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{Use: "stock-alert"}
	cmd := []*cobra.Command{
		{
			Use:   "serve-cron:stock",
			Short: "Run low stock scanner",
			Run: func(cmd *cobra.Command, args []string) {
				runCronStockCmd(ctx)
			},
		},
		{
			Use:   "serve-queue:alert",
			Short: "Run queue low stock alert consumer",
			Run: func(cmd *cobra.Command, args []string) {
				runQueueAlertCmd(ctx)
			},
		},
		{
			Use:   "serve-bot",
			Short: "Run chat command bot",
			Run: func(cmd *cobra.Command, args []string) {
				runBotCmd(ctx)
			},
		},
		{
			Use:   "serve-http",
			Short: "Run HTTP server with the product written hook",
			Run: func(cmd *cobra.Command, args []string) {
				runHttpServerCmd(ctx)
			},
		},
		{
			Use:   "dev",
			Short: "Run dev server, for testing purpose",
			Run: func(cmd *cobra.Command, args []string) {
				runHttpServerCmd(ctx)
			},
			PreRun: func(cmd *cobra.Command, args []string) {
				go func() {
					runCronStockCmd(ctx)
				}()
				go func() {
					runQueueAlertCmd(ctx)
				}()
				go func() {
					runBotCmd(ctx)
				}()
			},
		},
	}

	rootCmd.AddCommand(cmd...)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err)
	}
}
