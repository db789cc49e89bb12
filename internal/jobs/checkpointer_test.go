package jobs

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallets"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallettxs"
	"github.com/ShutDownMan/TGLabChallenge/internal/services/wallet"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passRunner struct{}

func (passRunner) WithTx(_ context.Context, fn func(*sql.Tx) error) error {
	return fn(nil)
}

type fakeWallets struct {
	byID map[uuid.UUID]*wallets.Wallet
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

func (f *fakeWallets) ListByPlayer(context.Context, uuid.UUID) ([]wallets.Wallet, error) {
	return nil, nil
}

func (f *fakeWallets) LockBalance(_ *sql.Tx, id uuid.UUID) (int64, error) {
	w, ok := f.byID[id]
	if !ok {
		return 0, wallets.ErrWalletNotFound
	}
	return w.BalanceMinor, nil
}

func (f *fakeWallets) AddBalance(_ *sql.Tx, id uuid.UUID, amount int64) error {
	f.byID[id].BalanceMinor += amount
	return nil
}

func (f *fakeWallets) SubtractBalance(_ *sql.Tx, id uuid.UUID, amount int64) error {
	f.byID[id].BalanceMinor -= amount
	return nil
}

func (f *fakeWallets) CurrencyCode(context.Context, uuid.UUID) (string, error) {
	return "USD", nil
}

func (f *fakeWallets) ListIDs(context.Context) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for id := range f.byID {
		out = append(out, id)
	}
	return out, nil
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

func (f *fakeEntries) ListByWalletPage(context.Context, uuid.UUID, int, int) ([]wallettxs.Entry, error) {
	return nil, nil
}

func TestCheckpointerSweep(t *testing.T) {
	t.Parallel()

	fw := &fakeWallets{byID: make(map[uuid.UUID]*wallets.Wallet)}
	fe := &fakeEntries{}

	a := uuid.New()
	b := uuid.New()
	fw.byID[a] = &wallets.Wallet{ID: a, BalanceMinor: 100}
	fw.byID[b] = &wallets.Wallet{ID: b, BalanceMinor: 200}

	ledger := wallet.New(passRunner{}, fw, fe)
	cp := NewCheckpointer(ledger, fw, time.Hour)

	cp.sweep(context.Background())

	// One checkpoint entry per wallet, balances untouched.
	require.Len(t, fe.entries, 2)
	for _, e := range fe.entries {
		assert.Equal(t, wallettxs.TypeCheckpoint, e.Type)
	}
	assert.Equal(t, int64(100), fw.byID[a].BalanceMinor)
	assert.Equal(t, int64(200), fw.byID[b].BalanceMinor)
}

func TestManagerStopsWithContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	m := NewManager()
	m.Register(jobFunc(func(ctx context.Context) {
		<-ctx.Done()
	}))

	done := make(chan struct{})

	go func() {
		m.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("manager did not stop after cancel")
	}
}

type jobFunc func(ctx context.Context)

func (f jobFunc) Run(ctx context.Context) { f(ctx) }
