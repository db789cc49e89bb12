// Package wallet is the ledger engine: every wallet balance mutation
// goes through here, paired with an append-only wallet_transactions
// entry inside the caller's database transaction.
package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ShutDownMan/TGLabChallenge/internal/infra/pgutils"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallets"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallettxs"
	"github.com/google/uuid"
)

// ErrInvalidAmount rejects non-positive debit/credit magnitudes.
var ErrInvalidAmount = errors.New("amount must be positive")

type Service struct {
	runner  pgutils.TxRunner
	wallets wallets.Wallets
	entries wallettxs.Entries
}

func New(runner pgutils.TxRunner, walletsRepo wallets.Wallets, entriesRepo wallettxs.Entries) *Service {
	return &Service{
		runner:  runner,
		wallets: walletsRepo,
		entries: entriesRepo,
	}
}

// Debit removes amount from the wallet and appends a debit entry. It
// runs inside the caller's transaction: the wallet row is locked, the
// balance pre-checked, then decremented with a conditional update so
// two debits can never both pass the check.
func (s *Service) Debit(tx *sql.Tx, walletID uuid.UUID, amount int64, betID *uuid.UUID) (*wallettxs.Entry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	balance, err := s.wallets.LockBalance(tx, walletID)
	if err != nil {
		return nil, fmt.Errorf("lock wallet: %w", err)
	}

	if balance < amount {
		return nil, wallets.ErrInsufficientBalance
	}

	err = s.wallets.SubtractBalance(tx, walletID, amount)
	if err != nil {
		return nil, fmt.Errorf("subtract balance: %w", err)
	}

	entry := wallettxs.Entry{
		ID:          uuid.New(),
		WalletID:    walletID,
		Type:        wallettxs.TypeDebit,
		AmountMinor: amount,
		BetID:       betID,
		CreatedAt:   time.Now().UTC(),
	}

	err = s.entries.Insert(tx, entry)
	if err != nil {
		return nil, fmt.Errorf("append debit entry: %w", err)
	}

	return &entry, nil
}

// Credit adds amount to the wallet and appends a credit entry, inside
// the caller's transaction.
func (s *Service) Credit(tx *sql.Tx, walletID uuid.UUID, amount int64, betID *uuid.UUID) (*wallettxs.Entry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	_, err := s.wallets.LockBalance(tx, walletID)
	if err != nil {
		return nil, fmt.Errorf("lock wallet: %w", err)
	}

	err = s.wallets.AddBalance(tx, walletID, amount)
	if err != nil {
		return nil, fmt.Errorf("add balance: %w", err)
	}

	entry := wallettxs.Entry{
		ID:          uuid.New(),
		WalletID:    walletID,
		Type:        wallettxs.TypeCredit,
		AmountMinor: amount,
		BetID:       betID,
		CreatedAt:   time.Now().UTC(),
	}

	err = s.entries.Insert(tx, entry)
	if err != nil {
		return nil, fmt.Errorf("append credit entry: %w", err)
	}

	return &entry, nil
}

// Checkpoint folds the ledger since the previous checkpoint and appends
// a snapshot entry carrying the signed net change. It never touches the
// wallet balance; the snapshot exists so a balance audit only has to
// scan history back to the latest checkpoint. Safe to re-run: with no
// intervening entries the next checkpoint simply records zero.
func (s *Service) Checkpoint(ctx context.Context, walletID uuid.UUID) (*wallettxs.Entry, error) {
	var entry wallettxs.Entry

	err := s.runner.WithTx(ctx, func(tx *sql.Tx) error {
		// Lock the wallet row so the fold sees a quiescent history.
		_, err := s.wallets.LockBalance(tx, walletID)
		if err != nil {
			return fmt.Errorf("lock wallet: %w", err)
		}

		history, err := s.entries.ListByWallet(tx, walletID)
		if err != nil {
			return fmt.Errorf("list ledger: %w", err)
		}

		net, parent := foldSinceCheckpoint(history)

		entry = wallettxs.Entry{
			ID:                 uuid.New(),
			WalletID:           walletID,
			Type:               wallettxs.TypeCheckpoint,
			AmountMinor:        net,
			ParentCheckpointID: parent,
			CreatedAt:          time.Now().UTC(),
		}

		err = s.entries.Insert(tx, entry)
		if err != nil {
			return fmt.Errorf("append checkpoint entry: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// foldSinceCheckpoint walks history (ordered by created_at ascending)
// and returns the signed sum of debits and credits after the latest
// checkpoint, plus that checkpoint's id.
func foldSinceCheckpoint(history []wallettxs.Entry) (int64, *uuid.UUID) {
	var (
		net    int64
		parent *uuid.UUID
	)

	for _, e := range history {
		switch e.Type {
		case wallettxs.TypeCheckpoint:
			id := e.ID
			parent = &id
			net = 0
		case wallettxs.TypeCredit:
			net += e.AmountMinor
		case wallettxs.TypeDebit:
			net -= e.AmountMinor
		}
	}

	return net, parent
}

// Balance returns the wallet's current balance in minor units.
func (s *Service) Balance(ctx context.Context, walletID uuid.UUID) (int64, error) {
	w, err := s.wallets.GetByID(ctx, walletID)
	if err != nil {
		return 0, fmt.Errorf("get wallet: %w", err)
	}

	return w.BalanceMinor, nil
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Transactions returns one page of the wallet's ledger, oldest first.
func (s *Service) Transactions(ctx context.Context, walletID uuid.UUID, page, perPage int) ([]wallettxs.Entry, error) {
	if page < 1 {
		page = 1
	}

	if perPage < 1 {
		perPage = defaultPageSize
	} else if perPage > maxPageSize {
		perPage = maxPageSize
	}

	// Reject unknown wallets instead of returning an empty page.
	_, err := s.wallets.GetByID(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}

	entries, err := s.entries.ListByWalletPage(ctx, walletID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, fmt.Errorf("list ledger page: %w", err)
	}

	return entries, nil
}
