package config

import (
	"fmt"
	"stock-alert/common/constant"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// App is the process configuration, read once at start and passed by value.
type App struct {
	Env string `mapstructure:"env"`

	Log struct {
		Level int `mapstructure:"level"`
	} `mapstructure:"log"`

	Server struct {
		Port     int    `mapstructure:"port" validate:"gte=0,lte=65535"`
		Timezone string `mapstructure:"timezone"`
	} `mapstructure:"server"`

	Db struct {
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Name     string `mapstructure:"name"`
		Pool     struct {
			Max int `mapstructure:"max"`
			Min int `mapstructure:"min"`
		} `mapstructure:"pool"`
	} `mapstructure:"db"`

	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`

	Nats struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"nats"`

	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`

	Channel struct {
		Driver        string        `mapstructure:"driver" validate:"oneof=jetstream kafka"`
		Name          string        `mapstructure:"name" validate:"required"`
		ConsumerGroup string        `mapstructure:"consumer_group" validate:"required"`
		MaxDeliver    int           `mapstructure:"max_deliver"`
		AckWait       time.Duration `mapstructure:"ack_wait"`
	} `mapstructure:"channel"`

	Stock struct {
		Threshold int `mapstructure:"threshold" validate:"gte=0"`
	} `mapstructure:"stock"`

	Cron struct {
		Stock struct {
			Interval time.Duration `mapstructure:"interval" validate:"gt=0"`
			Timeout  time.Duration `mapstructure:"timeout" validate:"gt=0"`
		} `mapstructure:"stock"`
	} `mapstructure:"cron"`

	Catalog struct {
		BaseUrl string        `mapstructure:"base_url" validate:"required,url"`
		Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
	} `mapstructure:"catalog"`

	Telegram struct {
		Token          string        `mapstructure:"token" validate:"required"`
		Username       string        `mapstructure:"username"`
		ChatId         int64         `mapstructure:"chat_id" validate:"required"`
		PollTimeout    int           `mapstructure:"poll_timeout"`
		Workers        int64         `mapstructure:"workers" validate:"gt=0"`
		CommandTimeout time.Duration `mapstructure:"command_timeout" validate:"gt=0"`
		RatePerSecond  float64       `mapstructure:"rate_per_second" validate:"gt=0"`
		Burst          int           `mapstructure:"burst" validate:"gt=0"`
	} `mapstructure:"telegram"`

	Queue struct {
		Alert struct {
			Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
		} `mapstructure:"alert"`
	} `mapstructure:"queue"`

	Otel struct {
		Enabled     bool   `mapstructure:"enabled"`
		Endpoint    string `mapstructure:"endpoint"`
		ServiceName string `mapstructure:"service_name"`
	} `mapstructure:"otel"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", 0)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timezone", "UTC")
	v.SetDefault("channel.driver", constant.ChannelDriverJetStream)
	v.SetDefault("channel.name", constant.DefaultChannelName)
	v.SetDefault("channel.consumer_group", constant.DefaultConsumerGroup)
	v.SetDefault("channel.max_deliver", 5)
	v.SetDefault("channel.ack_wait", "30s")
	v.SetDefault("stock.threshold", 10)
	v.SetDefault("cron.stock.interval", "5m")
	v.SetDefault("cron.stock.timeout", "1m")
	v.SetDefault("catalog.timeout", "5s")
	v.SetDefault("telegram.poll_timeout", 60)
	v.SetDefault("telegram.workers", 8)
	v.SetDefault("telegram.command_timeout", "15s")
	v.SetDefault("telegram.rate_per_second", 25)
	v.SetDefault("telegram.burst", 5)
	v.SetDefault("queue.alert.timeout", "10s")
	v.SetDefault("otel.service_name", "stock-alert")
}

// Load decodes and validates the viper tree.
func Load(v *viper.Viper) (App, error) {
	var app App
	if err := v.Unmarshal(&app); err != nil {
		return App{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(app); err != nil {
		return App{}, fmt.Errorf("validate config: %w", err)
	}

	return app, nil
}
