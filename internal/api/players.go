package api

import (
	"net/http"
	"time"

	"github.com/ShutDownMan/TGLabChallenge/internal/money"
	playersvc "github.com/ShutDownMan/TGLabChallenge/internal/services/player"
	"github.com/google/uuid"
)

type registerRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=32"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	CurrencyID int32  `json:"currencyId" validate:"required,gt=0"`
	// Optional opening balance as a 2-decimal string.
	InitialBalance string `json:"initialBalance,omitempty"`
}

type registerResponse struct {
	ID        uuid.UUID      `json:"id"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	CreatedAt time.Time      `json:"createdAt"`
	Wallet    walletResponse `json:"wallet"`
}

// RegisterHandler handles POST /api/players.
func (h *HandlerProvider) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	var initial int64

	if req.InitialBalance != "" {
		var err error

		initial, err = money.ParseMinor(req.InitialBalance)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	p, wallet, err := h.players.Register(r.Context(), playersvc.RegisterRequest{
		Username:            req.Username,
		Email:               req.Email,
		Password:            req.Password,
		CurrencyID:          req.CurrencyID,
		InitialBalanceMinor: initial,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		ID:        p.ID,
		Username:  p.Username,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
		Wallet:    toWalletResponse(*wallet),
	})
}

type profileResponse struct {
	ID        uuid.UUID        `json:"id"`
	Username  string           `json:"username"`
	Email     string           `json:"email"`
	CreatedAt time.Time        `json:"createdAt"`
	Wallets   []walletResponse `json:"wallets"`
}

// GetProfileHandler handles GET /api/players/{playerId}.
func (h *HandlerProvider) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	playerID, err := parseUUIDParam(r, "playerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playerId in path")
		return
	}

	profile, err := h.players.GetProfile(r.Context(), playerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	ws := make([]walletResponse, 0, len(profile.Wallets))
	for _, wallet := range profile.Wallets {
		ws = append(ws, toWalletResponse(wallet))
	}

	writeJSON(w, http.StatusOK, profileResponse{
		ID:        profile.Player.ID,
		Username:  profile.Player.Username,
		Email:     profile.Player.Email,
		CreatedAt: profile.Player.CreatedAt,
		Wallets:   ws,
	})
}

// ListPlayerBetsHandler handles GET /api/players/{playerId}/bets.
func (h *HandlerProvider) ListPlayerBetsHandler(w http.ResponseWriter, r *http.Request) {
	playerID, err := parseUUIDParam(r, "playerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playerId in path")
		return
	}

	list, err := h.bets.ByPlayer(r.Context(), playerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBetResponses(list))
}
