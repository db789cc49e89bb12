package players

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ShutDownMan/TGLabChallenge/internal/repos/players"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ players.Players = (*playersRepo)(nil)

type playersRepo struct{ db *sql.DB }

func New(db *sql.DB) *playersRepo {
	return &playersRepo{db: db}
}

func (r *playersRepo) Insert(tx *sql.Tx, p players.Player) error {
	_, err := tx.Exec(`
		INSERT INTO players (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, p.ID, p.Username, p.Email, p.PasswordHash, p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			switch pgErr.ConstraintName {
			case "players_username_key":
				return players.ErrUsernameTaken
			case "players_email_key":
				return players.ErrEmailTaken
			}
		}

		return fmt.Errorf("insert player: %w", err)
	}

	return nil
}

func (r *playersRepo) GetByID(ctx context.Context, id uuid.UUID) (*players.Player, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM players
		WHERE id = $1
	`, id)

	return scanPlayer(row)
}

func (r *playersRepo) GetByUsername(ctx context.Context, username string) (*players.Player, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM players
		WHERE username = $1
	`, username)

	return scanPlayer(row)
}

func scanPlayer(row *sql.Row) (*players.Player, error) {
	var p players.Player

	err := row.Scan(&p.ID, &p.Username, &p.Email, &p.PasswordHash, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, players.ErrPlayerNotFound
		}

		return nil, fmt.Errorf("scan player: %w", err)
	}

	return &p, nil
}
