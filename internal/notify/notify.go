// Package notify pushes state changes to connected players.
//
// Delivery is best-effort and fire-and-forget: callers invoke Notify
// after their database transaction has committed, and failures are
// logged, never returned.
package notify

import "github.com/google/uuid"

// Event kinds pushed to clients.
const (
	EventBetUpdate         = "bet-update"
	EventBetCancelled      = "bet-cancelled"
	EventBetSettled        = "bet-settled"
	EventWalletTransaction = "wallet-transaction-update"
)

type Notifier interface {
	Notify(playerID uuid.UUID, event string, payload any)
}

// Discard drops every notification. Used by tests and offline tools.
type Discard struct{}

func (Discard) Notify(uuid.UUID, string, any) {}
