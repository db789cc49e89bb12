package bet

import (
	"context"
	"database/sql"
	"sync"

	"github.com/ShutDownMan/TGLabChallenge/internal/repos/bets"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/games"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/players"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallets"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallettxs"
	"github.com/google/uuid"
)

// In-memory repo fakes. The TxRunner hands the callback a nil *sql.Tx,
// which the fakes ignore, so the full service logic runs without a
// database. No rollback: tests asserting failure also assert nothing
// was written before the failing step.

type passRunner struct{}

func (passRunner) WithTx(_ context.Context, fn func(*sql.Tx) error) error {
	return fn(nil)
}

type fakeWallets struct {
	byID  map[uuid.UUID]*wallets.Wallet
	codes map[int32]string
}

func newFakeWallets() *fakeWallets {
	return &fakeWallets{
		byID:  make(map[uuid.UUID]*wallets.Wallet),
		codes: map[int32]string{1: "USD", 2: "EUR"},
	}
}

func (f *fakeWallets) Insert(_ *sql.Tx, w wallets.Wallet) error {
	cp := w
	f.byID[w.ID] = &cp
	return nil
}

func (f *fakeWallets) GetByID(_ context.Context, id uuid.UUID) (*wallets.Wallet, error) {
	w, ok := f.byID[id]
	if !ok {
		return nil, wallets.ErrWalletNotFound
	}
	cp := *w
	return &cp, nil
}

func (f *fakeWallets) ListByPlayer(_ context.Context, playerID uuid.UUID) ([]wallets.Wallet, error) {
	var out []wallets.Wallet
	for _, w := range f.byID {
		if w.PlayerID == playerID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (f *fakeWallets) LockBalance(_ *sql.Tx, id uuid.UUID) (int64, error) {
	w, ok := f.byID[id]
	if !ok {
		return 0, wallets.ErrWalletNotFound
	}
	return w.BalanceMinor, nil
}

func (f *fakeWallets) AddBalance(_ *sql.Tx, id uuid.UUID, amount int64) error {
	w, ok := f.byID[id]
	if !ok {
		return wallets.ErrWalletNotFound
	}
	w.BalanceMinor += amount
	return nil
}

func (f *fakeWallets) SubtractBalance(_ *sql.Tx, id uuid.UUID, amount int64) error {
	w, ok := f.byID[id]
	if !ok || w.BalanceMinor < amount {
		return wallets.ErrInsufficientBalance
	}
	w.BalanceMinor -= amount
	return nil
}

func (f *fakeWallets) CurrencyCode(_ context.Context, id uuid.UUID) (string, error) {
	w, ok := f.byID[id]
	if !ok {
		return "", wallets.ErrWalletNotFound
	}
	return f.codes[w.CurrencyID], nil
}

func (f *fakeWallets) ListIDs(context.Context) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for id := range f.byID {
		out = append(out, id)
	}
	return out, nil
}

type fakePlayers struct {
	byID map[uuid.UUID]*players.Player
}

func newFakePlayers() *fakePlayers {
	return &fakePlayers{byID: make(map[uuid.UUID]*players.Player)}
}

func (f *fakePlayers) Insert(_ *sql.Tx, p players.Player) error {
	cp := p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePlayers) GetByID(_ context.Context, id uuid.UUID) (*players.Player, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, players.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlayers) GetByUsername(_ context.Context, username string) (*players.Player, error) {
	for _, p := range f.byID {
		if p.Username == username {
			cp := *p
			return &cp, nil
		}
	}
	return nil, players.ErrPlayerNotFound
}

type fakeGames struct {
	byID map[uuid.UUID]*games.Game
}

func newFakeGames() *fakeGames {
	return &fakeGames{byID: make(map[uuid.UUID]*games.Game)}
}

func (f *fakeGames) GetByID(_ context.Context, id uuid.UUID) (*games.Game, error) {
	g, ok := f.byID[id]
	if !ok {
		return nil, games.ErrGameNotFound
	}
	cp := *g
	return &cp, nil
}

type fakeBets struct {
	order []*bets.Bet
}

func (f *fakeBets) Insert(_ *sql.Tx, b bets.Bet) error {
	cp := b
	f.order = append(f.order, &cp)
	return nil
}

func (f *fakeBets) find(id uuid.UUID) *bets.Bet {
	for _, b := range f.order {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (f *fakeBets) GetByID(_ context.Context, id uuid.UUID) (*bets.Bet, error) {
	b := f.find(id)
	if b == nil {
		return nil, bets.ErrBetNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBets) GetForUpdate(_ *sql.Tx, id uuid.UUID) (*bets.Bet, error) {
	b := f.find(id)
	if b == nil {
		return nil, bets.ErrBetNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBets) Update(_ *sql.Tx, b bets.Bet) error {
	existing := f.find(b.ID)
	if existing == nil {
		return bets.ErrBetNotFound
	}
	*existing = b
	return nil
}

func (f *fakeBets) ListByWalletAndGame(_ *sql.Tx, walletID, gameID uuid.UUID) ([]bets.Bet, error) {
	var out []bets.Bet
	for i := len(f.order) - 1; i >= 0; i-- {
		b := f.order[i]
		if b.WalletID == walletID && b.GameID == gameID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBets) ListByPlayer(context.Context, uuid.UUID) ([]bets.Bet, error) {
	return nil, nil
}

type fakeEntries struct {
	entries []wallettxs.Entry
}

func (f *fakeEntries) Insert(_ *sql.Tx, e wallettxs.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeEntries) ListByWallet(_ *sql.Tx, walletID uuid.UUID) ([]wallettxs.Entry, error) {
	var out []wallettxs.Entry
	for _, e := range f.entries {
		if e.WalletID == walletID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntries) ListByWalletPage(_ context.Context, walletID uuid.UUID, limit, offset int) ([]wallettxs.Entry, error) {
	all, _ := f.ListByWallet(nil, walletID)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeEntries) ofType(t wallettxs.Type) []wallettxs.Entry {
	var out []wallettxs.Entry
	for _, e := range f.entries {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// recordNotifier captures outgoing notifications.
type recordNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	PlayerID uuid.UUID
	Event    string
	Payload  any
}

func (n *recordNotifier) Notify(playerID uuid.UUID, event string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{PlayerID: playerID, Event: event, Payload: payload})
}

func (n *recordNotifier) named(event string) []recordedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []recordedEvent
	for _, e := range n.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

// flipProvider lets a test change the next outcome mid-flow.
type flipProvider struct {
	win bool
}

func (p *flipProvider) DetermineOutcome() bool {
	return p.win
}
