package wallettxs

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeDebit      Type = "debit"
	TypeCredit     Type = "credit"
	TypeCheckpoint Type = "checkpoint"
)

// Entry is one row of the append-only wallet ledger. Debit and credit
// amounts are positive magnitudes; the sign comes from the type. A
// checkpoint's amount is the signed net change since its parent
// checkpoint.
type Entry struct {
	ID                 uuid.UUID
	WalletID           uuid.UUID
	Type               Type
	AmountMinor        int64
	BetID              *uuid.UUID
	ParentCheckpointID *uuid.UUID
	CreatedAt          time.Time
}

// Entries is insert-only by contract: ledger rows are never updated or
// deleted once written.
type Entries interface {
	Insert(tx *sql.Tx, e Entry) error
	// ListByWallet returns all entries ordered by created_at ascending,
	// read inside the given transaction so checkpoint folds see a
	// consistent history.
	ListByWallet(tx *sql.Tx, walletID uuid.UUID) ([]Entry, error)
	// ListByWalletPage is the read-only paginated variant for the API.
	ListByWalletPage(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]Entry, error)
}
