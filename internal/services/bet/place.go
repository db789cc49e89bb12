package bet

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ShutDownMan/TGLabChallenge/internal/notify"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/bets"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallets"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallettxs"
	"github.com/google/uuid"
)

type PlaceRequest struct {
	WalletID    uuid.UUID
	GameID      uuid.UUID
	AmountMinor int64
	CurrencyID  int32
}

// Place validates the stake against the game's rules, then atomically
// creates the bet and debits the wallet. The debit re-checks the
// balance under a row lock, so a concurrent Place on the same wallet
// cannot overdraw it.
func (s *Service) Place(ctx context.Context, req PlaceRequest) (*bets.Bet, error) {
	w, err := s.wallets.GetByID(ctx, req.WalletID)
	if err != nil {
		return nil, fmt.Errorf("resolve wallet: %w", err)
	}

	_, err = s.players.GetByID(ctx, w.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("resolve player: %w", err)
	}

	g, err := s.games.GetByID(ctx, req.GameID)
	if err != nil {
		return nil, fmt.Errorf("resolve game: %w", err)
	}

	if req.AmountMinor < g.MinBetMinor {
		return nil, ErrBelowMinimum
	}

	if req.CurrencyID != g.MinBetCurrencyID {
		return nil, ErrInvalidCurrency
	}

	// Early rejection on a stale read; the ledger debit repeats this
	// check authoritatively under the row lock.
	if w.BalanceMinor < req.AmountMinor {
		return nil, wallets.ErrInsufficientBalance
	}

	now := time.Now().UTC()
	b := bets.Bet{
		ID:            uuid.New(),
		WalletID:      req.WalletID,
		GameID:        req.GameID,
		AmountMinor:   req.AmountMinor,
		Status:        bets.StatusCreated,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	var entry *wallettxs.Entry

	err = s.runner.WithTx(ctx, func(tx *sql.Tx) error {
		err := s.bets.Insert(tx, b)
		if err != nil {
			return fmt.Errorf("insert bet: %w", err)
		}

		entry, err = s.ledger.Debit(tx, b.WalletID, b.AmountMinor, &b.ID)
		if err != nil {
			return fmt.Errorf("debit stake: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("bet placed",
		"bet_id", b.ID, "wallet_id", b.WalletID, "game_id", b.GameID, "amount", b.AmountMinor)

	s.notifier.Notify(w.PlayerID, notify.EventBetUpdate, betPayload(b))
	s.notifyEntry(w.PlayerID, entry)

	return &b, nil
}
