package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallets"
	"github.com/ShutDownMan/TGLabChallenge/internal/services/wallet"
)

// Checkpointer periodically appends a checkpoint entry to every
// wallet's ledger so balance audits never have to scan the full
// history. A failed wallet is logged and skipped; the sweep continues.
type Checkpointer struct {
	ledger   *wallet.Service
	wallets  wallets.Wallets
	interval time.Duration
}

func NewCheckpointer(ledger *wallet.Service, walletsRepo wallets.Wallets, interval time.Duration) *Checkpointer {
	return &Checkpointer{
		ledger:   ledger,
		wallets:  walletsRepo,
		interval: interval,
	}
}

func (c *Checkpointer) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	slog.Info("wallet checkpointer started", "interval", c.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("wallet checkpointer stopped")
			return
		case <-ticker.C:
			c.sweep(ctx)
		}
	}
}

func (c *Checkpointer) sweep(ctx context.Context) {
	ids, err := c.wallets.ListIDs(ctx)
	if err != nil {
		slog.Error("checkpoint sweep: list wallets", "error", err)
		return
	}

	var done int

	for _, id := range ids {
		if ctx.Err() != nil {
			return
		}

		_, err := c.ledger.Checkpoint(ctx, id)
		if err != nil {
			slog.Error("checkpoint wallet", "wallet_id", id, "error", err)
			continue
		}

		done++
	}

	slog.Debug("checkpoint sweep finished", "wallets", done)
}
