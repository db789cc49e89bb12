package pgutils

import (
	"context"
	"database/sql"
	"fmt"
)

// WithTx runs fn inside a database transaction.
// It commits if fn returns nil, otherwise it rolls back.
func WithTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil) // default isolation level
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	err = fn(tx)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("rollback after fn error: %v (fn err: %w)", rbErr, err)
		}

		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// TxRunner is the unit-of-work boundary handed to services. Production
// code uses Runner over a *sql.DB; unit tests substitute a pass-through
// so the ledger and lifecycle logic can run against in-memory fakes.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(*sql.Tx) error) error
}

// Runner is the *sql.DB-backed TxRunner.
type Runner struct {
	db *sql.DB
}

func NewRunner(db *sql.DB) *Runner {
	return &Runner{db: db}
}

func (r *Runner) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	return WithTx(ctx, r.db, fn)
}
