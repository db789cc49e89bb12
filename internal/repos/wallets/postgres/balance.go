package wallets

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallets"
	"github.com/google/uuid"
)

func (r *walletsRepo) LockBalance(tx *sql.Tx, id uuid.UUID) (int64, error) {
	var balance int64

	err := tx.QueryRow(`
		SELECT balance_minor
		FROM wallets
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, wallets.ErrWalletNotFound
		}

		return 0, fmt.Errorf("lock/get balance: %w", err)
	}

	return balance, nil
}

func (r *walletsRepo) AddBalance(tx *sql.Tx, id uuid.UUID, amount int64) error {
	res, err := tx.Exec(`
		UPDATE wallets
		SET balance_minor = balance_minor + $2
		WHERE id = $1
	`, id, amount)
	if err != nil {
		return fmt.Errorf("add balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return wallets.ErrWalletNotFound
	}

	return nil
}

func (r *walletsRepo) SubtractBalance(tx *sql.Tx, id uuid.UUID, amount int64) error {
	res, err := tx.Exec(`
		UPDATE wallets
		SET balance_minor = balance_minor - $2
		WHERE id = $1
		  AND balance_minor >= $2
	`, id, amount)
	if err != nil {
		return fmt.Errorf("subtract balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return wallets.ErrInsufficientBalance
	}

	return nil
}
