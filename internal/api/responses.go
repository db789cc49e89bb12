package api

import (
	"time"

	"github.com/ShutDownMan/TGLabChallenge/internal/money"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/bets"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallets"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallettxs"
	"github.com/google/uuid"
)

// Monetary amounts leave the API as 2-decimal strings.

type walletResponse struct {
	ID         uuid.UUID `json:"id"`
	PlayerID   uuid.UUID `json:"playerId"`
	CurrencyID int32     `json:"currencyId"`
	Balance    string    `json:"balance"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toWalletResponse(w wallets.Wallet) walletResponse {
	return walletResponse{
		ID:         w.ID,
		PlayerID:   w.PlayerID,
		CurrencyID: w.CurrencyID,
		Balance:    money.FormatMinor(w.BalanceMinor),
		CreatedAt:  w.CreatedAt,
	}
}

type betResponse struct {
	ID            uuid.UUID `json:"id"`
	WalletID      uuid.UUID `json:"walletId"`
	GameID        uuid.UUID `json:"gameId"`
	Amount        string    `json:"amount"`
	Status        string    `json:"status"`
	Payout        *string   `json:"payout,omitempty"`
	IsWon         *bool     `json:"isWon,omitempty"`
	Note          *string   `json:"note,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

func toBetResponse(b bets.Bet) betResponse {
	resp := betResponse{
		ID:            b.ID,
		WalletID:      b.WalletID,
		GameID:        b.GameID,
		Amount:        money.FormatMinor(b.AmountMinor),
		Status:        string(b.Status),
		IsWon:         b.IsWon,
		Note:          b.Note,
		CreatedAt:     b.CreatedAt,
		LastUpdatedAt: b.LastUpdatedAt,
	}

	if b.PayoutMinor != nil {
		p := money.FormatMinor(*b.PayoutMinor)
		resp.Payout = &p
	}

	return resp
}

func toBetResponses(list []bets.Bet) []betResponse {
	out := make([]betResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBetResponse(b))
	}

	return out
}

type entryResponse struct {
	ID                 uuid.UUID  `json:"id"`
	WalletID           uuid.UUID  `json:"walletId"`
	Type               string     `json:"type"`
	Amount             string     `json:"amount"`
	BetID              *uuid.UUID `json:"betId,omitempty"`
	ParentCheckpointID *uuid.UUID `json:"parentCheckpointId,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

func toEntryResponse(e wallettxs.Entry) entryResponse {
	return entryResponse{
		ID:                 e.ID,
		WalletID:           e.WalletID,
		Type:               string(e.Type),
		Amount:             money.FormatMinor(e.AmountMinor),
		BetID:              e.BetID,
		ParentCheckpointID: e.ParentCheckpointID,
		CreatedAt:          e.CreatedAt,
	}
}

func toEntryResponses(list []wallettxs.Entry) []entryResponse {
	out := make([]entryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEntryResponse(e))
	}

	return out
}
