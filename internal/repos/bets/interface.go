package bets

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrBetNotFound = errors.New("bet not found")

type Status string

const (
	StatusCreated   Status = "created"
	StatusCancelled Status = "cancelled"
	StatusSettled   Status = "settled"
)

type Bet struct {
	ID            uuid.UUID
	WalletID      uuid.UUID
	GameID        uuid.UUID
	AmountMinor   int64
	Status        Status
	PayoutMinor   *int64
	IsWon         *bool
	Note          *string
	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

type Bets interface {
	Insert(tx *sql.Tx, b Bet) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bet, error)
	// GetForUpdate locks the bet row so cancel/settle cannot race each
	// other through the created -> terminal transition.
	GetForUpdate(tx *sql.Tx, id uuid.UUID) (*Bet, error)
	// Update persists status, payout, outcome, note and last_updated_at.
	Update(tx *sql.Tx, b Bet) error
	// ListByWalletAndGame returns bets newest first, read inside the
	// given transaction (used for loss-streak evaluation).
	ListByWalletAndGame(tx *sql.Tx, walletID, gameID uuid.UUID) ([]Bet, error)
	ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]Bet, error)
}
