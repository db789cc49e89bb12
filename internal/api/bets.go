package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ShutDownMan/TGLabChallenge/internal/money"
	betsvc "github.com/ShutDownMan/TGLabChallenge/internal/services/bet"
	"github.com/google/uuid"
)

type placeBetRequest struct {
	WalletID   string `json:"walletId" validate:"required,uuid"`
	GameID     string `json:"gameId" validate:"required,uuid"`
	Amount     string `json:"amount" validate:"required"`
	CurrencyID int32  `json:"currencyId" validate:"required,gt=0"`
}

// PlaceBetHandler handles POST /api/bets.
func (h *HandlerProvider) PlaceBetHandler(w http.ResponseWriter, r *http.Request) {
	var req placeBetRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	amount, err := money.ParseMinor(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.bets.Place(r.Context(), betsvc.PlaceRequest{
		WalletID:    uuid.MustParse(req.WalletID),
		GameID:      uuid.MustParse(req.GameID),
		AmountMinor: amount,
		CurrencyID:  req.CurrencyID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBetResponse(*b))
}

// GetBetHandler handles GET /api/bets/{betId}.
func (h *HandlerProvider) GetBetHandler(w http.ResponseWriter, r *http.Request) {
	betID, err := parseUUIDParam(r, "betId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid betId in path")
		return
	}

	b, err := h.bets.ByID(r.Context(), betID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if b == nil {
		writeError(w, http.StatusNotFound, "bet not found")
		return
	}

	writeJSON(w, http.StatusOK, toBetResponse(*b))
}

type cancelBetRequest struct {
	Reason string `json:"reason" validate:"max=255"`
}

// CancelBetHandler handles POST /api/bets/{betId}/cancel.
func (h *HandlerProvider) CancelBetHandler(w http.ResponseWriter, r *http.Request) {
	betID, err := parseUUIDParam(r, "betId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid betId in path")
		return
	}

	// The body is optional here; an empty POST cancels with the
	// default reason.
	var req cancelBetRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	defer r.Body.Close()

	derr := dec.Decode(&req)
	if derr != nil && !errors.Is(derr, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if verr := h.validate.Struct(&req); verr != nil {
		writeError(w, http.StatusBadRequest, validationMessage(verr))
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = "Cancelled by player."
	}

	err = h.bets.Cancel(r.Context(), betID, reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	b, err := h.bets.ByID(r.Context(), betID)
	if err != nil || b == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
		return
	}

	writeJSON(w, http.StatusOK, toBetResponse(*b))
}

// SettleBetHandler handles POST /api/bets/{betId}/settle.
func (h *HandlerProvider) SettleBetHandler(w http.ResponseWriter, r *http.Request) {
	betID, err := parseUUIDParam(r, "betId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid betId in path")
		return
	}

	b, err := h.bets.Settle(r.Context(), betID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBetResponse(*b))
}
