package wallets

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
)

type Wallet struct {
	ID           uuid.UUID
	PlayerID     uuid.UUID
	CurrencyID   int32
	BalanceMinor int64
	CreatedAt    time.Time
}

// Wallets persists wallet rows. Balance is only ever written through
// AddBalance/SubtractBalance, and both expect the row to have been
// locked with LockBalance inside the same transaction first.
type Wallets interface {
	Insert(tx *sql.Tx, w Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*Wallet, error)
	ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]Wallet, error)

	// LockBalance takes a FOR UPDATE row lock and returns the current
	// balance in minor units.
	LockBalance(tx *sql.Tx, id uuid.UUID) (int64, error)
	AddBalance(tx *sql.Tx, id uuid.UUID, amount int64) error
	// SubtractBalance decrements conditionally and reports
	// ErrInsufficientBalance when the balance would go negative.
	SubtractBalance(tx *sql.Tx, id uuid.UUID, amount int64) error

	// CurrencyCode resolves the ISO code of the wallet's currency.
	CurrencyCode(ctx context.Context, id uuid.UUID) (string, error)

	// ListIDs returns every wallet id. Used by the checkpoint job.
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}
