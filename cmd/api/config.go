package main

import (
	"log/slog"
	"time"

	"github.com/ShutDownMan/TGLabChallenge/internal/config"
)

type apiConfig struct {
	Port            uint16        `env:"API_PORT" default:"8080"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL" default:"INFO"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" default:"15s"`

	// coin (50/50) or fair (seeded HMAC roll).
	OutcomeProvider string `env:"OUTCOME_PROVIDER" default:"coin"`
	FairServerSeed  string `env:"FAIR_SERVER_SEED" default:""`
	FairClientSeed  string `env:"FAIR_CLIENT_SEED" default:""`
	FairWinBps      int32  `env:"FAIR_WIN_BPS" default:"4900"`

	CheckpointInterval time.Duration `env:"WALLET_CHECKPOINT_INTERVAL" default:"1h"`

	Postgres config.PostgresConfig
}
