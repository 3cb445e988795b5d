package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config aggregates every setting the service reads from the
// environment. A .env file, when present, is loaded by main before
// parsing.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"8080"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"120"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Snapshot struct {
		// DBPath empty means the per-user default location.
		DBPath string `env:"DB_PATH"`
	} `envPrefix:"SNAPSHOT_"`
	Resolver struct {
		DelayMS int `env:"DELAY_MS" envDefault:"2000"`
	} `envPrefix:"RESOLVER_"`
	Voice struct {
		Enabled  bool    `env:"ENABLED" envDefault:"true"`
		Language string  `env:"LANGUAGE" envDefault:"pt-BR"`
		Rate     float32 `env:"RATE" envDefault:"1.0"`
	} `envPrefix:"VOICE_"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// Only the first error keeps the log readable.
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}
	return cfg, nil
}

// ResolverDelay is the artificial latency applied before each reply.
func (c *Config) ResolverDelay() time.Duration {
	if c.Resolver.DelayMS < 0 {
		return 0
	}
	return time.Duration(c.Resolver.DelayMS) * time.Millisecond
}
