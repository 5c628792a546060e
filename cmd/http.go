package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	inboundCron "stock-alert/inbound/cron"
	inboundHttp "stock-alert/inbound/http"
	"time"

	"github.com/go-playground/validator/v10"
)

func runHttpServerCmd(ctx context.Context) {
	cfg := newCfg("env")

	stopProfiling := startProfiling(cfg, "http")
	defer stopProfiling()

	shutdownTracer := initTracer(ctx, cfg)
	defer shutdownTracer()

	validate := validator.New()

	publisher, closePublisher := newPublisher(ctx, cfg)
	defer closePublisher()

	// the per-write check publishes directly and never scans, so no db or lock here
	stockHook := &inboundCron.StockCron{
		Publisher: publisher,
		Threshold: int32(cfg.Stock.Threshold),
	}

	mux := http.NewServeMux()
	inboundHttp.RegisterHookHttp(mux, stockHook, validate)

	timeoutMiddleware := inboundHttp.TimeoutMiddleware(20 * time.Second)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           timeoutMiddleware(inboundHttp.CorsMiddleware(inboundHttp.LoggingMiddleware(mux))),
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalln("unable to start server", err)
		}
	}()

	slog.Info("http server started", slog.Int("port", cfg.Server.Port))

	<-ctx.Done()

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutDown); err != nil {
		log.Fatalln("unable to shutdown server", err)
	}

	slog.Info("http server stopped")
}
