package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Timezone != "UTC" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Auth.BcryptCost != 12 || cfg.Auth.SessionTTL != 24*time.Hour || cfg.Auth.CookieName != "servicehub_session" {
		t.Errorf("unexpected auth defaults: %+v", cfg.Auth)
	}
	if cfg.Mongo.Database != "servicehub" || cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("unexpected store defaults: %+v %+v", cfg.Mongo, cfg.Redis)
	}
	if cfg.Dispatcher.Workers != 4 || cfg.Geocoder.Timeout != 5*time.Second {
		t.Errorf("unexpected worker/geocoder defaults")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"TIMEZONE":               "Asia/Kolkata",
		"SESSION_TTL":            "2h",
		"LOG_PRETTY":             "true",
		"INTEGRATION_JWT_SECRET": "s3cret",
		"DISPATCHER_WORKERS":     "8",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil || loc.String() != "Asia/Kolkata" {
		t.Errorf("unexpected location %v, err %v", loc, err)
	}
	if cfg.Auth.SessionTTL != 2*time.Hour || !cfg.LogPretty || cfg.Auth.IntegrationJWTSecret != "s3cret" || cfg.Dispatcher.Workers != 8 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	for name, env := range map[string]map[string]string{
		"bad timezone": {"TIMEZONE": "Mars/Olympus"},
		"no workers":   {"DISPATCHER_WORKERS": "0"},
		"bad duration": {"SESSION_TTL": "forever"},
	} {
		if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
