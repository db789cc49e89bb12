package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ShutDownMan/TGLabChallenge/internal/api"
	"github.com/ShutDownMan/TGLabChallenge/internal/infra/logging"
	"github.com/ShutDownMan/TGLabChallenge/internal/infra/pgutils"
	"github.com/ShutDownMan/TGLabChallenge/internal/jobs"
	"github.com/ShutDownMan/TGLabChallenge/internal/notify"
	"github.com/ShutDownMan/TGLabChallenge/internal/outcome"
	betspg "github.com/ShutDownMan/TGLabChallenge/internal/repos/bets/postgres"
	gamespg "github.com/ShutDownMan/TGLabChallenge/internal/repos/games/postgres"
	playerspg "github.com/ShutDownMan/TGLabChallenge/internal/repos/players/postgres"
	walletspg "github.com/ShutDownMan/TGLabChallenge/internal/repos/wallets/postgres"
	wallettxspg "github.com/ShutDownMan/TGLabChallenge/internal/repos/wallettxs/postgres"
	betsvc "github.com/ShutDownMan/TGLabChallenge/internal/services/bet"
	playersvc "github.com/ShutDownMan/TGLabChallenge/internal/services/player"
	walletsvc "github.com/ShutDownMan/TGLabChallenge/internal/services/wallet"
	"github.com/ShutDownMan/TGLabChallenge/pkg/envconf"
	"github.com/ShutDownMan/TGLabChallenge/pkg/shutdownqueue"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	_ = godotenv.Load()

	cfg := new(apiConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	db, err := pgutils.OpenDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime)
	db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)

	shutdownqueue.Add(func(context.Context) error {
		slog.Info("closing database pool")
		return db.Close()
	})

	runner := pgutils.NewRunner(db)

	// --- Repos ---
	playersRepo := playerspg.New(db)
	walletsRepo := walletspg.New(db)
	entriesRepo := wallettxspg.New(db)
	gamesRepo := gamespg.New(db)
	betsRepo := betspg.New(db)

	// --- Services ---
	hub := notify.NewHub()

	provider, err := buildProvider(cfg)
	if err != nil {
		return fmt.Errorf("init outcome provider: %w", err)
	}

	ledger := walletsvc.New(runner, walletsRepo, entriesRepo)
	playerSvc := playersvc.New(runner, playersRepo, walletsRepo, ledger)
	betSvc := betsvc.New(runner, betsRepo, gamesRepo, walletsRepo, playersRepo, ledger, provider, hub)

	// --- Background jobs ---
	manager := jobs.NewManager()
	manager.Register(jobs.NewCheckpointer(ledger, walletsRepo, cfg.CheckpointInterval))

	jobsDone := make(chan struct{})

	go func() {
		manager.Start(ctx)
		close(jobsDone)
	}()

	shutdownqueue.Add(func(c context.Context) error {
		select {
		case <-jobsDone:
			return nil
		case <-c.Done():
			return fmt.Errorf("jobs did not stop in time: %w", c.Err())
		}
	})

	// --- HTTP server ---
	handler := api.NewHandler(playerSvc, betSvc, ledger)
	srv := api.NewServer(cfg.Port, api.NewRouter(handler, hub))

	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("shutting down http server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port, "outcome_provider", cfg.OutcomeProvider)

	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}

func buildProvider(cfg *apiConfig) (outcome.Provider, error) {
	switch cfg.OutcomeProvider {
	case "coin":
		return outcome.Coin{}, nil
	case "fair":
		if cfg.FairServerSeed == "" || cfg.FairClientSeed == "" {
			return nil, fmt.Errorf("fair provider requires FAIR_SERVER_SEED and FAIR_CLIENT_SEED")
		}

		return outcome.NewFair(cfg.FairServerSeed, cfg.FairClientSeed, cfg.FairWinBps), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.OutcomeProvider)
	}
}
