package api

import (
	"net/http"
	"strconv"

	"github.com/ShutDownMan/TGLabChallenge/internal/money"
	"github.com/google/uuid"
)

type balanceResponse struct {
	WalletID uuid.UUID `json:"walletId"`
	Balance  string    `json:"balance"`
}

// GetBalanceHandler handles GET /api/wallets/{walletId}/balance.
func (h *HandlerProvider) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	walletID, err := parseUUIDParam(r, "walletId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid walletId in path")
		return
	}

	balance, err := h.ledger.Balance(r.Context(), walletID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{
		WalletID: walletID,
		Balance:  money.FormatMinor(balance),
	})
}

// ListTransactionsHandler handles
// GET /api/wallets/{walletId}/transactions?page=1&per_page=20.
func (h *HandlerProvider) ListTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	walletID, err := parseUUIDParam(r, "walletId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid walletId in path")
		return
	}

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 0)

	entries, err := h.ledger.Transactions(r.Context(), walletID, page, perPage)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponses(entries))
}

// CheckpointHandler handles POST /api/wallets/{walletId}/checkpoint.
func (h *HandlerProvider) CheckpointHandler(w http.ResponseWriter, r *http.Request) {
	walletID, err := parseUUIDParam(r, "walletId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid walletId in path")
		return
	}

	entry, err := h.ledger.Checkpoint(r.Context(), walletID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(*entry))
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}

	return n
}
