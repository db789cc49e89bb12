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
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/games"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallettxs"
	"github.com/google/uuid"
)

const lostNote = "Bet settled: player lost, no payout."

// Settle resolves a created bet through the outcome provider. A win
// credits amount times the game's odds back to the wallet; a loss pays
// nothing but may trigger the game's consecutive-loss bonus.
func (s *Service) Settle(ctx context.Context, betID uuid.UUID) (*bets.Bet, error) {
	var (
		b       *bets.Bet
		entries []*wallettxs.Entry
	)

	err := s.runner.WithTx(ctx, func(tx *sql.Tx) error {
		entries = entries[:0]

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

		won := s.provider.DetermineOutcome()
		b.IsWon = &won

		var payout int64

		if won {
			payout = money.ApplyOdds(b.AmountMinor, g.OddsX100)

			entry, err := s.ledger.Credit(tx, b.WalletID, payout, &b.ID)
			if err != nil {
				return fmt.Errorf("credit payout: %w", err)
			}
			entries = append(entries, entry)

			code, err := s.wallets.CurrencyCode(ctx, b.WalletID)
			if err != nil {
				return fmt.Errorf("resolve wallet currency: %w", err)
			}

			note := fmt.Sprintf("Bet settled: player won, payout %s %s.",
				money.FormatMinor(payout), code)
			b.Note = &note
		} else {
			note := lostNote
			b.Note = &note
		}

		b.PayoutMinor = &payout
		b.Status = bets.StatusSettled
		b.LastUpdatedAt = time.Now().UTC()

		err = s.bets.Update(tx, *b)
		if err != nil {
			return fmt.Errorf("update bet: %w", err)
		}

		if !won {
			entry, err := s.awardLossStreakBonus(tx, b, g)
			if err != nil {
				return err
			}
			if entry != nil {
				entries = append(entries, entry)
			}
		}

		slog.Debug("settling bet", "bet_id", betID, "won", won, "payout", payout)

		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("bet settled", "bet_id", betID, "won", *b.IsWon, "payout", *b.PayoutMinor)

	playerID, ok := s.playerOf(ctx, b.WalletID)
	if ok {
		s.notifier.Notify(playerID, notify.EventBetSettled, betPayload(*b))
		for _, e := range entries {
			s.notifyEntry(playerID, e)
		}
	}

	return b, nil
}

// awardLossStreakBonus credits a consolation bonus when this loss is
// exactly the game's consecutive-loss threshold for the wallet. Exact
// equality keeps the bonus one-shot per streak: the 4th, 5th, ... loss
// in a row pays nothing until a win or cancellation resets the run.
func (s *Service) awardLossStreakBonus(tx *sql.Tx, b *bets.Bet, g *games.Game) (*wallettxs.Entry, error) {
	if g.LossBonusThreshold == nil || g.LossBonusBps <= 0 {
		return nil, nil
	}

	history, err := s.bets.ListByWalletAndGame(tx, b.WalletID, b.GameID)
	if err != nil {
		return nil, fmt.Errorf("list bets for streak: %w", err)
	}

	streak := trailingLossStreak(history)
	if streak != int(*g.LossBonusThreshold) {
		return nil, nil
	}

	bonus := money.ApplyBps(b.AmountMinor, g.LossBonusBps)
	if bonus <= 0 {
		return nil, nil
	}

	// The bonus is not a bet transaction; it rides on its own ledger
	// entry id with no bet reference.
	entry, err := s.ledger.Credit(tx, b.WalletID, bonus, nil)
	if err != nil {
		return nil, fmt.Errorf("credit loss streak bonus: %w", err)
	}

	slog.Info("consecutive-loss bonus awarded",
		"wallet_id", b.WalletID, "game_id", b.GameID, "streak", streak, "bonus", bonus)

	return entry, nil
}

// trailingLossStreak counts settled-and-lost bets from the newest
// backwards, stopping at the first bet that breaks the run.
func trailingLossStreak(newestFirst []bets.Bet) int {
	streak := 0

	for _, b := range newestFirst {
		if b.Status != bets.StatusSettled || b.IsWon == nil || *b.IsWon {
			break
		}

		streak++
	}

	return streak
}
