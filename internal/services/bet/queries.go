package bet

import (
	"context"
	"errors"
	"fmt"

	"github.com/ShutDownMan/TGLabChallenge/internal/repos/bets"
	"github.com/google/uuid"
)

// ByID returns the bet, or nil without error when no such bet exists.
func (s *Service) ByID(ctx context.Context, betID uuid.UUID) (*bets.Bet, error) {
	b, err := s.bets.GetByID(ctx, betID)
	if err != nil {
		if errors.Is(err, bets.ErrBetNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("get bet: %w", err)
	}

	return b, nil
}

// ByPlayer returns the player's bets newest first; empty for an unknown
// player.
func (s *Service) ByPlayer(ctx context.Context, playerID uuid.UUID) ([]bets.Bet, error) {
	list, err := s.bets.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list bets: %w", err)
	}

	return list, nil
}
