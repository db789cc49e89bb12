package bet

import (
	"context"
	"log/slog"
	"time"

	"github.com/ShutDownMan/TGLabChallenge/internal/money"
	"github.com/ShutDownMan/TGLabChallenge/internal/notify"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/bets"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallettxs"
	"github.com/google/uuid"
)

// Notification payloads mirror what the dashboard renders: amounts as
// 2-decimal strings, ids as plain uuids.

type betEvent struct {
	ID            uuid.UUID  `json:"id"`
	WalletID      uuid.UUID  `json:"walletId"`
	GameID        uuid.UUID  `json:"gameId"`
	Amount        string     `json:"amount"`
	Status        string     `json:"status"`
	Payout        *string    `json:"payout,omitempty"`
	IsWon         *bool      `json:"isWon,omitempty"`
	Note          *string    `json:"note,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
}

type entryEvent struct {
	ID        uuid.UUID  `json:"id"`
	WalletID  uuid.UUID  `json:"walletId"`
	Type      string     `json:"type"`
	Amount    string     `json:"amount"`
	BetID     *uuid.UUID `json:"betId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func betPayload(b bets.Bet) betEvent {
	ev := betEvent{
		ID:            b.ID,
		WalletID:      b.WalletID,
		GameID:        b.GameID,
		Amount:        money.FormatMinor(b.AmountMinor),
		Status:        string(b.Status),
		IsWon:         b.IsWon,
		Note:          b.Note,
		CreatedAt:     b.CreatedAt,
		LastUpdatedAt: b.LastUpdatedAt,
	}

	if b.PayoutMinor != nil {
		p := money.FormatMinor(*b.PayoutMinor)
		ev.Payout = &p
	}

	return ev
}

func (s *Service) notifyEntry(playerID uuid.UUID, e *wallettxs.Entry) {
	if e == nil {
		return
	}

	s.notifier.Notify(playerID, notify.EventWalletTransaction, entryEvent{
		ID:        e.ID,
		WalletID:  e.WalletID,
		Type:      string(e.Type),
		Amount:    money.FormatMinor(e.AmountMinor),
		BetID:     e.BetID,
		CreatedAt: e.CreatedAt,
	})
}

// playerOf resolves the owning player for post-commit notifications.
// Best effort: on failure the notification is skipped, never the
// operation.
func (s *Service) playerOf(ctx context.Context, walletID uuid.UUID) (uuid.UUID, bool) {
	w, err := s.wallets.GetByID(ctx, walletID)
	if err != nil {
		slog.Warn("skipping notification, wallet lookup failed", "wallet_id", walletID, "error", err)
		return uuid.Nil, false
	}

	return w.PlayerID, true
}
