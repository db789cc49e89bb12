// Package bet drives a bet through its lifecycle: placed, then exactly
// once cancelled or settled. Every operation is one database
// transaction; money moves only through the wallet ledger service, and
// client notifications go out after commit.
package bet

import (
	"errors"

	"github.com/ShutDownMan/TGLabChallenge/internal/infra/pgutils"
	"github.com/ShutDownMan/TGLabChallenge/internal/notify"
	"github.com/ShutDownMan/TGLabChallenge/internal/outcome"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/bets"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/games"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/players"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallets"
	"github.com/ShutDownMan/TGLabChallenge/internal/services/wallet"
)

var (
	// ErrBelowMinimum rejects stakes under the game's minimum bet.
	ErrBelowMinimum = errors.New("bet amount below game minimum")
	// ErrInvalidCurrency rejects stakes in a currency the game does not take.
	ErrInvalidCurrency = errors.New("bet currency does not match game currency")
	// ErrInvalidTransition rejects cancel/settle on a bet that has
	// already reached a terminal state.
	ErrInvalidTransition = errors.New("bet is not in created state")
)

type Service struct {
	runner   pgutils.TxRunner
	bets     bets.Bets
	games    games.Games
	wallets  wallets.Wallets
	players  players.Players
	ledger   *wallet.Service
	provider outcome.Provider
	notifier notify.Notifier
}

func New(
	runner pgutils.TxRunner,
	betsRepo bets.Bets,
	gamesRepo games.Games,
	walletsRepo wallets.Wallets,
	playersRepo players.Players,
	ledger *wallet.Service,
	provider outcome.Provider,
	notifier notify.Notifier,
) *Service {
	return &Service{
		runner:   runner,
		bets:     betsRepo,
		games:    gamesRepo,
		wallets:  walletsRepo,
		players:  playersRepo,
		ledger:   ledger,
		provider: provider,
		notifier: notifier,
	}
}
