package wallettxs

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallettxs"
	"github.com/google/uuid"
)

var _ wallettxs.Entries = (*entriesRepo)(nil)

type entriesRepo struct{ db *sql.DB }

func New(db *sql.DB) *entriesRepo {
	return &entriesRepo{db: db}
}

func (r *entriesRepo) Insert(tx *sql.Tx, e wallettxs.Entry) error {
	_, err := tx.Exec(`
		INSERT INTO wallet_transactions
			(id, wallet_id, tx_type, amount_minor, bet_id, parent_checkpoint_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.WalletID, string(e.Type), e.AmountMinor, e.BetID, e.ParentCheckpointID, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}

	return nil
}

const listColumns = `id, wallet_id, tx_type, amount_minor, bet_id, parent_checkpoint_id, created_at`

func (r *entriesRepo) ListByWallet(tx *sql.Tx, walletID uuid.UUID) ([]wallettxs.Entry, error) {
	rows, err := tx.Query(`
		SELECT `+listColumns+`
		FROM wallet_transactions
		WHERE wallet_id = $1
		ORDER BY created_at, id
	`, walletID)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}

	return scanEntries(rows)
}

func (r *entriesRepo) ListByWalletPage(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]wallettxs.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+listColumns+`
		FROM wallet_transactions
		WHERE wallet_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3
	`, walletID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries page: %w", err)
	}

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]wallettxs.Entry, error) {
	defer rows.Close()

	var out []wallettxs.Entry

	for rows.Next() {
		var (
			e      wallettxs.Entry
			txType string
		)

		err := rows.Scan(&e.ID, &e.WalletID, &txType, &e.AmountMinor, &e.BetID, &e.ParentCheckpointID, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}

		e.Type = wallettxs.Type(txType)
		out = append(out, e)
	}

	err := rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", err)
	}

	return out, nil
}
