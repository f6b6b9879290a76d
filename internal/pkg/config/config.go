package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Gateway GatewayConfig
	Events  EventsConfig
	Redis   RedisConfig
	API     APIConfig
}

type GatewayConfig struct {
	RPCURL  string        `env:"GATEWAY_RPC_URL, default=http://localhost:8545"`
	WSURL   string        `env:"GATEWAY_WS_URL,  default=ws://localhost:8546"`
	Timeout time.Duration `env:"GATEWAY_TIMEOUT, default=20s"`
	// Account pins the active account. Empty means ask the wallet.
	Account string `env:"WALLET_ACCOUNT"`
}

// MaxEventLogCapacity is the hard bound on the session event log.
const MaxEventLogCapacity = 100

type EventsConfig struct {
	LogCapacity int  `env:"EVENT_LOG_CAPACITY, default=100"`
	Dedup       bool `env:"EVENT_DEDUP,        default=false"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type APIConfig struct {
	Addr      string `env:"API_ADDR, default=:8080"`
	JWTSecret string `env:"API_JWT_SECRET"`
}

// Production reports whether logs should be emitted as plain JSON.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// LoadWith reads configuration through lookuper. main passes
// envconfig.OsLookuper(); tests pass a MapLookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if cfg.Events.LogCapacity <= 0 || cfg.Events.LogCapacity > MaxEventLogCapacity {
		return nil, fmt.Errorf("EVENT_LOG_CAPACITY must be in 1..%d, got %d", MaxEventLogCapacity, cfg.Events.LogCapacity)
	}
	return &cfg, nil
}
