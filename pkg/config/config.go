package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/quantlabs/quant-analytics/pkg/interval"
	"github.com/quantlabs/quant-analytics/pkg/redis"
	"github.com/quantlabs/quant-analytics/pkg/timescale"
)

// Config represents the application configuration.
type Config struct {
	App         AppConfig        `envPrefix:"APP_"`
	Timescale   timescale.Config `envPrefix:"TIMESCALE_"`
	Redis       redis.Config     `envPrefix:"REDIS_"`
	Stream      StreamConfig     `envPrefix:"STREAM_"`
	Aggregation interval.Config  `envPrefix:"AGGREGATION_"`
	Alert       AlertConfig      `envPrefix:"ALERT_"`
	Analytics   AnalyticsConfig  `envPrefix:"ANALYTICS_"`
	Ingester    IngesterConfig   `envPrefix:"INGESTER_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"quant-analytics"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// StreamConfig represents the Redis stream transport configuration.
type StreamConfig struct {
	TickStream    string `env:"TICK_STREAM" envDefault:"ticks_stream"`
	AlertStream   string `env:"ALERT_STREAM" envDefault:"alerts_stream"`
	ConsumerGroup string `env:"CONSUMER_GROUP" envDefault:"ingestor_group"`
	MaxStreamLen  int64  `env:"MAX_STREAM_LEN" envDefault:"100000"`

	// Batch insert tuning for the tick consumer.
	BatchSize    int           `env:"BATCH_SIZE" envDefault:"500"`
	BatchTimeout time.Duration `env:"BATCH_TIMEOUT" envDefault:"1s"`
	ReadCount    int64         `env:"READ_COUNT" envDefault:"100"`
	ReadBlock    time.Duration `env:"READ_BLOCK" envDefault:"1s"`
}

// AlertConfig represents the alert engine configuration.
type AlertConfig struct {
	// Cooldown suppresses re-triggering of a rule for this long after it fires.
	Cooldown      time.Duration `env:"COOLDOWN" envDefault:"60s"`
	RuleReload    time.Duration `env:"RULE_RELOAD" envDefault:"10s"`
	UpdateBuffer  int           `env:"UPDATE_BUFFER" envDefault:"1024"`
	WorkerCount   int           `env:"WORKER_COUNT" envDefault:"4"`
	PublishStream bool          `env:"PUBLISH_STREAM" envDefault:"true"`
}

// AnalyticsConfig represents the derived analytics configuration.
type AnalyticsConfig struct {
	Interval      time.Duration `env:"INTERVAL" envDefault:"5s"`
	RollingWindow int           `env:"ROLLING_WINDOW" envDefault:"20"`
	BarInterval   string        `env:"BAR_INTERVAL" envDefault:"1s"`
	Pairs         []string      `env:"PAIRS" envSeparator:"," envDefault:"BTCUSDT:ETHUSDT"`
}

// IngesterConfig represents the websocket ingester configuration.
type IngesterConfig struct {
	Enabled        bool          `env:"ENABLED" envDefault:"true"`
	WSBaseURL      string        `env:"WS_BASE_URL" envDefault:"wss://fstream.binance.com/ws"`
	Symbols        []string      `env:"SYMBOLS" envSeparator:"," envDefault:"btcusdt,ethusdt,bnbusdt"`
	ReadTimeout    time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	ReconnectDelay time.Duration `env:"RECONNECT_DELAY" envDefault:"5s"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
