package config

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve in images without zoneinfo

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	// Timezone is the location booking dates and dashboard windows are
	// evaluated in.
	Timezone string `env:"TIMEZONE, default=UTC"`

	Auth       AuthConfig
	Dispatcher DispatcherConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	Geocoder   GeocoderConfig
}

type AuthConfig struct {
	BcryptCost     int           `env:"BCRYPT_COST,           default=12"`
	SessionTTL     time.Duration `env:"SESSION_TTL,           default=24h"`
	CookieName     string        `env:"SESSION_COOKIE_NAME,   default=servicehub_session"`
	CookieSecure   bool          `env:"SESSION_COOKIE_SECURE, default=false"`
	// LoginRateLimit is the number of login attempts allowed per client IP
	// per minute.
	LoginRateLimit int `env:"LOGIN_RATE_LIMIT, default=10"`
	// IntegrationJWTSecret signs tokens of systems reporting completions.
	// Empty disables the completion endpoints.
	IntegrationJWTSecret string `env:"INTEGRATION_JWT_SECRET"`
}

type DispatcherConfig struct {
	Workers int `env:"DISPATCHER_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=servicehub"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type GeocoderConfig struct {
	BaseURL string        `env:"GEOCODER_BASE_URL, default=https://nominatim.openstreetmap.org"`
	Timeout time.Duration `env:"GEOCODER_TIMEOUT,  default=5s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	if cfg.Dispatcher.Workers < 1 {
		return nil, fmt.Errorf("config: DISPATCHER_WORKERS must be at least 1, got %d", cfg.Dispatcher.Workers)
	}
	return &cfg, nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
