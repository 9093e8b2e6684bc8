package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=5000"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo       MongoConfig
	Redis       RedisConfig
	AMQP        AMQPConfig
	Stripe      StripeConfig
	Fulfillment FulfillmentConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=sea_tech"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// AMQPConfig is optional; order events are not published when URL is empty.
type AMQPConfig struct {
	URL     string `env:"AMQP_URL"`
	Workers int    `env:"AMQP_WORKERS, default=4"`
}

type StripeConfig struct {
	SecretKey string `env:"STRIPE_SECRET, required"`
}

type FulfillmentConfig struct {
	SerializeInventory bool `env:"FULFILLMENT_SERIALIZE_INVENTORY, default=true"`
	RejectOversell     bool `env:"FULFILLMENT_REJECT_OVERSELL,     default=false"`
	MaxAttempts        int  `env:"FULFILLMENT_MAX_ATTEMPTS,        default=5"`
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
// A missing secret is a startup failure.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

// LoadFrom reads configuration from lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}
