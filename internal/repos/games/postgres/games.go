package games

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ShutDownMan/TGLabChallenge/internal/repos/games"
	"github.com/google/uuid"
)

var _ games.Games = (*gamesRepo)(nil)

type gamesRepo struct{ db *sql.DB }

func New(db *sql.DB) *gamesRepo {
	return &gamesRepo{db: db}
}

func (r *gamesRepo) GetByID(ctx context.Context, id uuid.UUID) (*games.Game, error) {
	var g games.Game

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, min_bet_minor, min_bet_currency_id,
		       cancel_tax_bps, odds_x100, loss_bonus_threshold, loss_bonus_bps, created_at
		FROM games
		WHERE id = $1
	`, id).Scan(&g.ID, &g.Name, &g.Description, &g.MinBetMinor, &g.MinBetCurrencyID,
		&g.CancelTaxBps, &g.OddsX100, &g.LossBonusThreshold, &g.LossBonusBps, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, games.ErrGameNotFound
		}

		return nil, fmt.Errorf("get game: %w", err)
	}

	return &g, nil
}
