package wallets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallets"
	"github.com/google/uuid"
)

func (r *walletsRepo) Insert(tx *sql.Tx, w wallets.Wallet) error {
	_, err := tx.Exec(`
		INSERT INTO wallets (id, player_id, currency_id, balance_minor, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, w.ID, w.PlayerID, w.CurrencyID, w.BalanceMinor, w.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}

	return nil
}

func (r *walletsRepo) GetByID(ctx context.Context, id uuid.UUID) (*wallets.Wallet, error) {
	var w wallets.Wallet

	err := r.db.QueryRowContext(ctx, `
		SELECT id, player_id, currency_id, balance_minor, created_at
		FROM wallets
		WHERE id = $1
	`, id).Scan(&w.ID, &w.PlayerID, &w.CurrencyID, &w.BalanceMinor, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wallets.ErrWalletNotFound
		}

		return nil, fmt.Errorf("get wallet: %w", err)
	}

	return &w, nil
}

func (r *walletsRepo) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]wallets.Wallet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, player_id, currency_id, balance_minor, created_at
		FROM wallets
		WHERE player_id = $1
		ORDER BY created_at
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var out []wallets.Wallet

	for rows.Next() {
		var w wallets.Wallet

		err = rows.Scan(&w.ID, &w.PlayerID, &w.CurrencyID, &w.BalanceMinor, &w.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan wallet: %w", err)
		}

		out = append(out, w)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate wallets: %w", err)
	}

	return out, nil
}

func (r *walletsRepo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM wallets ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list wallet ids: %w", err)
	}
	defer rows.Close()

	var out []uuid.UUID

	for rows.Next() {
		var id uuid.UUID

		err = rows.Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("scan wallet id: %w", err)
		}

		out = append(out, id)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate wallet ids: %w", err)
	}

	return out, nil
}

func (r *walletsRepo) CurrencyCode(ctx context.Context, id uuid.UUID) (string, error) {
	var code string

	err := r.db.QueryRowContext(ctx, `
		SELECT c.code
		FROM wallets w
		JOIN currencies c ON c.id = w.currency_id
		WHERE w.id = $1
	`, id).Scan(&code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", wallets.ErrWalletNotFound
		}

		return "", fmt.Errorf("get wallet currency: %w", err)
	}

	return code, nil
}
