package cmd

import (
	"context"
	"log"
	"log/slog"
	"stock-alert/common/config"
	"stock-alert/common/constant"
	commonJs "stock-alert/common/jetstream"
	"stock-alert/common/kafka"
	"stock-alert/inbound/event"

	"github.com/nats-io/nats.go/jetstream"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func runQueueAlertCmd(ctx context.Context) {
	cfg := newCfg("env")

	stopProfiling := startProfiling(cfg, "alert")
	defer stopProfiling()

	shutdownTracer := initTracer(ctx, cfg)
	defer shutdownTracer()

	bot := newBot(cfg)

	alertEvent := event.AlertEvent{
		Notifier: newNotifier(bot, cfg),
		ChatID:   cfg.Telegram.ChatId,
		Printer:  message.NewPrinter(language.Russian),
		Timeout:  cfg.Queue.Alert.Timeout,
	}

	switch cfg.Channel.Driver {
	case constant.ChannelDriverKafka:
		consumeAlertKafka(ctx, cfg, alertEvent)
	default:
		consumeAlertJetStream(ctx, cfg, alertEvent)
	}
}

func consumeAlertJetStream(ctx context.Context, cfg config.App, alertEvent event.AlertEvent) {
	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)
	st := createStreamWorkQueue(ctx, js, cfg.Channel.Name)

	cons, err := st.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Durable:       cfg.Channel.ConsumerGroup,
		FilterSubject: commonJs.Wildcard(cfg.Channel.Name),
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    cfg.Channel.MaxDeliver,
		AckWait:       cfg.Channel.AckWait,
	})
	if err != nil {
		log.Fatalln("failed to create consumer", err)
	}

	iter, err := cons.Messages()
	if err != nil {
		log.Fatalln("failed to open message iterator", err)
	}

	done := make(chan struct{})

	go func() {
		defer close(done)

		for {
			select {
			case <-ctx.Done():
				return
			default:
				msg, err := iter.Next()
				if err == jetstream.ErrMsgIteratorClosed {
					return
				}
				if err != nil {
					slog.ErrorContext(ctx, "Error fetching message", slog.Any(constant.LogFieldErr, err))
					continue
				}

				if msg == nil {
					continue
				}

				if err := alertEvent.LowStockHandler(ctx, msg.Data()); err != nil {
					msg.Nak()
					continue
				}

				if err := msg.Ack(); err != nil {
					slog.ErrorContext(ctx, "Error acknowledging message",
						slog.Any(constant.LogFieldErr, err),
						slog.Any(constant.LogFieldPayload, string(msg.Data())),
						slog.String("subject", msg.Subject()),
					)
					continue
				}
			}
		}
	}()

	slog.InfoContext(ctx, "alert queue consumer started", slog.String("driver", constant.ChannelDriverJetStream))

	<-ctx.Done()

	iter.Stop()
	<-done

	slog.InfoContext(ctx, "alert queue consumer stopped")
}

func consumeAlertKafka(ctx context.Context, cfg config.App, alertEvent event.AlertEvent) {
	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Channel.Name, cfg.Channel.ConsumerGroup)
	defer consumer.Close()

	slog.InfoContext(ctx, "alert queue consumer started", slog.String("driver", constant.ChannelDriverKafka))

	err := consumer.Consume(ctx, func(ctx context.Context, key, value []byte) error {
		return alertEvent.LowStockHandler(ctx, value)
	})
	if err != nil && ctx.Err() == nil {
		slog.ErrorContext(ctx, "alert queue consumer failed", slog.Any(constant.LogFieldErr, err))
	}

	slog.InfoContext(ctx, "alert queue consumer stopped")
}
