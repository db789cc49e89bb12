package envconf

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

type pgSection struct {
	DSN string `env:"TEST_ENVCONF_DSN"`
}

type sampleConfig struct {
	Port     uint16        `env:"TEST_ENVCONF_PORT"`
	LogLevel slog.Level    `env:"TEST_ENVCONF_LOG_LEVEL" default:"INFO"`
	Interval time.Duration `env:"TEST_ENVCONF_INTERVAL" default:"5m"`
	Postgres pgSection
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_ENVCONF_PORT", "8080")
	t.Setenv("TEST_ENVCONF_DSN", "postgres://localhost/db")
	t.Setenv("TEST_ENVCONF_LOG_LEVEL", "DEBUG")

	cfg := new(sampleConfig)

	err := Load(cfg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("port: want 8080, got %d", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("log level: want DEBUG, got %v", cfg.LogLevel)
	}
	if cfg.Interval != 5*time.Minute {
		t.Errorf("interval default: want 5m, got %v", cfg.Interval)
	}
	if cfg.Postgres.DSN != "postgres://localhost/db" {
		t.Errorf("nested dsn: got %q", cfg.Postgres.DSN)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("TEST_ENVCONF_DSN", "x")

	// TEST_ENVCONF_PORT deliberately unset and has no default.
	cfg := new(sampleConfig)

	err := Load(cfg)
	if !errors.Is(err, ErrMissingRequired) {
		t.Fatalf("want ErrMissingRequired, got %v", err)
	}
}

func TestLoad_NotAPointer(t *testing.T) {
	err := Load(sampleConfig{})
	if err == nil {
		t.Fatal("want error for non-pointer destination")
	}
}
