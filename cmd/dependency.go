package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime/pprof"
	"stock-alert/common/config"
	"stock-alert/common/constant"
	commonJs "stock-alert/common/jetstream"
	"stock-alert/common/otel"
	"stock-alert/outbound/channel"
	"stock-alert/outbound/telegram"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

func newCfg(name string) config.App {
	v := viper.New()

	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	config.SetDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		log.Fatalln(err)
	}

	cfg, err := config.Load(v)
	if err != nil {
		log.Fatalln(err)
	}

	err = os.Setenv("TZ", cfg.Server.Timezone)
	if err != nil {
		log.Fatalln(err)
	}

	return cfg
}

func newDb(cfg config.App) *pgxpool.Pool {
	connString := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?timezone=%s",
		cfg.Db.User, cfg.Db.Password, cfg.Db.Host, cfg.Db.Port, cfg.Db.Name, cfg.Server.Timezone)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		log.Fatalln(err)
	}

	poolConfig.MaxConns = int32(cfg.Db.Pool.Max)
	poolConfig.MinConns = int32(cfg.Db.Pool.Min)
	poolConfig.ConnConfig.Tracer = &otel.PgxCustomTracer{}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalln(err)
	}

	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatalln(err)
	}

	return pool
}

func newRedis(cfg config.App) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	err := rdb.Ping(context.Background()).Err()
	if err != nil {
		log.Fatalln(err)
	}

	return rdb
}

func newNats(cfg config.App) *nats.Conn {
	conn, err := nats.Connect(cfg.Nats.Addr)
	if err != nil {
		log.Fatalln(err)
	}

	return conn
}

func newJs(conn *nats.Conn) jetstream.JetStream {
	js, err := jetstream.New(conn)
	if err != nil {
		log.Fatalln(err)
	}

	return js
}

func createStreamWorkQueue(ctx context.Context, js jetstream.JetStream, name string) jetstream.Stream {
	st, err := commonJs.CreateQueueStream(ctx, js, name)
	if err != nil {
		log.Fatalln(err)
	}

	return st
}

// newPublisher builds the channel publisher for the configured driver. The
// returned func releases the underlying connection.
func newPublisher(ctx context.Context, cfg config.App) (channel.LowStockPublisher, func()) {
	switch cfg.Channel.Driver {
	case constant.ChannelDriverKafka:
		writer := channel.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Channel.Name)

		return channel.LowStockPublisher{Channel: channel.KafkaPublisher{Writer: writer}}, func() {
			if err := writer.Close(); err != nil {
				slog.Error("failed to close kafka writer", slog.Any(constant.LogFieldErr, err))
			}
		}
	default:
		natsConn := newNats(cfg)
		js := newJs(natsConn)
		createStreamWorkQueue(ctx, js, cfg.Channel.Name)

		return channel.LowStockPublisher{Channel: channel.JetStreamPublisher{JS: js, Channel: cfg.Channel.Name}}, natsConn.Close
	}
}

func newBot(cfg config.App) *tgbotapi.BotAPI {
	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Fatalln("failed to create telegram bot", err)
	}

	if cfg.Telegram.Username != "" && bot.Self.UserName != cfg.Telegram.Username {
		slog.Warn("telegram bot username mismatch", slog.String("configured", cfg.Telegram.Username), slog.String("actual", bot.Self.UserName))
	}

	return bot
}

func newNotifier(bot *tgbotapi.BotAPI, cfg config.App) *telegram.Notifier {
	return telegram.NewNotifier(telegram.BotSender{Bot: bot}, cfg.Telegram.RatePerSecond, cfg.Telegram.Burst)
}

func initTracer(ctx context.Context, cfg config.App) func() {
	if !cfg.Otel.Enabled {
		return func() {}
	}

	shutdown, err := otel.InitTracerProvider(ctx, cfg.Otel.Endpoint, cfg.Otel.ServiceName)
	if err != nil {
		log.Fatalln("failed to init tracer", err)
	}

	return func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("failed to shutdown tracer", slog.Any(constant.LogFieldErr, err))
		}
	}
}

// startProfiling writes cpu and heap profiles in the dev env.
func startProfiling(cfg config.App, name string) func() {
	if cfg.Env != "dev" {
		return func() {}
	}

	cpu, err := os.Create(name + "-cpu.prof")
	if err != nil {
		log.Fatalf("could not create CPU profile: %v", err)
	}

	// only one cpu profile per process, the dev command runs several servers
	err = pprof.StartCPUProfile(cpu)
	if err != nil {
		slog.Warn("could not start CPU profile", slog.String("name", name), slog.Any(constant.LogFieldErr, err))
		cpu.Close()
		return func() {}
	}

	return func() {
		pprof.StopCPUProfile()
		cpu.Close()

		mem, err := os.Create(name + "-mem.prof")
		if err != nil {
			slog.Error("could not create memory profile", slog.Any(constant.LogFieldErr, err))
			return
		}
		defer mem.Close()

		if err := pprof.WriteHeapProfile(mem); err != nil {
			slog.Error("could not write memory profile", slog.Any(constant.LogFieldErr, err))
		}
	}
}
