package bets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ShutDownMan/TGLabChallenge/internal/repos/bets"
	"github.com/google/uuid"
)

var _ bets.Bets = (*betsRepo)(nil)

type betsRepo struct{ db *sql.DB }

func New(db *sql.DB) *betsRepo {
	return &betsRepo{db: db}
}

const betColumns = `id, wallet_id, game_id, amount_minor, status, payout_minor, is_won, note, created_at, last_updated_at`

func (r *betsRepo) Insert(tx *sql.Tx, b bets.Bet) error {
	_, err := tx.Exec(`
		INSERT INTO bets (`+betColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, b.ID, b.WalletID, b.GameID, b.AmountMinor, string(b.Status),
		b.PayoutMinor, b.IsWon, b.Note, b.CreatedAt, b.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("insert bet: %w", err)
	}

	return nil
}

func (r *betsRepo) GetByID(ctx context.Context, id uuid.UUID) (*bets.Bet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+betColumns+`
		FROM bets
		WHERE id = $1
	`, id)

	return scanBet(row)
}

func (r *betsRepo) GetForUpdate(tx *sql.Tx, id uuid.UUID) (*bets.Bet, error) {
	row := tx.QueryRow(`
		SELECT `+betColumns+`
		FROM bets
		WHERE id = $1
		FOR UPDATE
	`, id)

	return scanBet(row)
}

func (r *betsRepo) Update(tx *sql.Tx, b bets.Bet) error {
	res, err := tx.Exec(`
		UPDATE bets
		SET status = $2, payout_minor = $3, is_won = $4, note = $5, last_updated_at = $6
		WHERE id = $1
	`, b.ID, string(b.Status), b.PayoutMinor, b.IsWon, b.Note, b.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("update bet: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return bets.ErrBetNotFound
	}

	return nil
}

func (r *betsRepo) ListByWalletAndGame(tx *sql.Tx, walletID, gameID uuid.UUID) ([]bets.Bet, error) {
	rows, err := tx.Query(`
		SELECT `+betColumns+`
		FROM bets
		WHERE wallet_id = $1
		  AND game_id = $2
		ORDER BY created_at DESC, id DESC
	`, walletID, gameID)
	if err != nil {
		return nil, fmt.Errorf("list bets by wallet and game: %w", err)
	}

	return scanBets(rows)
}

func (r *betsRepo) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]bets.Bet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT b.id, b.wallet_id, b.game_id, b.amount_minor, b.status,
		       b.payout_minor, b.is_won, b.note, b.created_at, b.last_updated_at
		FROM bets b
		JOIN wallets w ON w.id = b.wallet_id
		WHERE w.player_id = $1
		ORDER BY b.created_at DESC, b.id DESC
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list bets by player: %w", err)
	}

	return scanBets(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBet(row rowScanner) (*bets.Bet, error) {
	var (
		b      bets.Bet
		status string
	)

	err := row.Scan(&b.ID, &b.WalletID, &b.GameID, &b.AmountMinor, &status,
		&b.PayoutMinor, &b.IsWon, &b.Note, &b.CreatedAt, &b.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bets.ErrBetNotFound
		}

		return nil, fmt.Errorf("scan bet: %w", err)
	}

	b.Status = bets.Status(status)

	return &b, nil
}

func scanBets(rows *sql.Rows) ([]bets.Bet, error) {
	defer rows.Close()

	var out []bets.Bet

	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *b)
	}

	err := rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate bets: %w", err)
	}

	return out, nil
}
