// Package player covers registration and profile reads. Registration
// creates the player together with their first wallet in one
// transaction; wallets are never created any other way.
package player

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ShutDownMan/TGLabChallenge/internal/infra/pgutils"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/players"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallets"
	"github.com/ShutDownMan/TGLabChallenge/internal/services/wallet"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrWeakPassword rejects passwords under the minimum length.
var ErrWeakPassword = errors.New("password must be at least 8 characters")

const minPasswordLen = 8

type Service struct {
	runner  pgutils.TxRunner
	players players.Players
	wallets wallets.Wallets
	ledger  *wallet.Service
}

func New(runner pgutils.TxRunner, playersRepo players.Players, walletsRepo wallets.Wallets, ledger *wallet.Service) *Service {
	return &Service{
		runner:  runner,
		players: playersRepo,
		wallets: walletsRepo,
		ledger:  ledger,
	}
}

type RegisterRequest struct {
	Username   string
	Email      string
	Password   string
	CurrencyID int32
	// InitialBalanceMinor funds the first wallet. Zero leaves it empty.
	InitialBalanceMinor int64
}

// Register creates the player and an empty wallet in the requested
// currency. Username and email collisions surface as the repo
// sentinels ErrUsernameTaken / ErrEmailTaken.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*players.Player, *wallets.Wallet, error) {
	if len(req.Password) < minPasswordLen {
		return nil, nil, ErrWeakPassword
	}

	if req.InitialBalanceMinor < 0 {
		return nil, nil, wallet.ErrInvalidAmount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()

	p := players.Player{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}

	w := wallets.Wallet{
		ID:         uuid.New(),
		PlayerID:   p.ID,
		CurrencyID: req.CurrencyID,
		CreatedAt:  now,
	}

	err = s.runner.WithTx(ctx, func(tx *sql.Tx) error {
		err := s.players.Insert(tx, p)
		if err != nil {
			return fmt.Errorf("insert player: %w", err)
		}

		err = s.wallets.Insert(tx, w)
		if err != nil {
			return fmt.Errorf("insert wallet: %w", err)
		}

		// The opening balance goes through the ledger so the history
		// folds to the balance from day one.
		if req.InitialBalanceMinor > 0 {
			_, err = s.ledger.Credit(tx, w.ID, req.InitialBalanceMinor, nil)
			if err != nil {
				return fmt.Errorf("credit initial balance: %w", err)
			}

			w.BalanceMinor = req.InitialBalanceMinor
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("player registered", "player_id", p.ID, "username", p.Username)

	return &p, &w, nil
}

type Profile struct {
	Player  players.Player
	Wallets []wallets.Wallet
}

// GetProfile returns the player with all their wallets.
func (s *Service) GetProfile(ctx context.Context, playerID uuid.UUID) (*Profile, error) {
	p, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	}

	ws, err := s.wallets.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}

	return &Profile{Player: *p, Wallets: ws}, nil
}
