package bet

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ShutDownMan/TGLabChallenge/internal/money"
	"github.com/ShutDownMan/TGLabChallenge/internal/notify"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/bets"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallettxs"
	"github.com/google/uuid"
)

// Cancel takes a created bet to the cancelled terminal state, refunding
// the stake minus the game's cancellation tax. With a 100% tax the
// refund is zero and no credit is written.
func (s *Service) Cancel(ctx context.Context, betID uuid.UUID, reason string) error {
	var (
		b     *bets.Bet
		entry *wallettxs.Entry
	)

	err := s.runner.WithTx(ctx, func(tx *sql.Tx) error {
		var err error

		b, err = s.bets.GetForUpdate(tx, betID)
		if err != nil {
			return fmt.Errorf("resolve bet: %w", err)
		}

		if b.Status != bets.StatusCreated {
			return ErrInvalidTransition
		}

		g, err := s.games.GetByID(ctx, b.GameID)
		if err != nil {
			return fmt.Errorf("resolve game: %w", err)
		}

		tax := money.ApplyBps(b.AmountMinor, g.CancelTaxBps)
		refund := b.AmountMinor - tax

		if refund > 0 {
			entry, err = s.ledger.Credit(tx, b.WalletID, refund, &b.ID)
			if err != nil {
				return fmt.Errorf("credit refund: %w", err)
			}
		}

		b.Status = bets.StatusCancelled
		b.Note = &reason
		b.LastUpdatedAt = time.Now().UTC()

		err = s.bets.Update(tx, *b)
		if err != nil {
			return fmt.Errorf("update bet: %w", err)
		}

		slog.Debug("cancelling bet",
			"bet_id", betID, "reason", reason, "tax", tax, "refund", refund)

		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("bet cancelled", "bet_id", betID)

	playerID, ok := s.playerOf(ctx, b.WalletID)
	if ok {
		s.notifier.Notify(playerID, notify.EventBetCancelled, betPayload(*b))
		s.notifyEntry(playerID, entry)
	}

	return nil
}
