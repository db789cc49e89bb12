package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ShutDownMan/TGLabChallenge/internal/repos/bets"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/games"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/players"
	"github.com/ShutDownMan/TGLabChallenge/internal/repos/wallets"
	betsvc "github.com/ShutDownMan/TGLabChallenge/internal/services/bet"
	playersvc "github.com/ShutDownMan/TGLabChallenge/internal/services/player"
	walletsvc "github.com/ShutDownMan/TGLabChallenge/internal/services/wallet"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// HandlerProvider exposes the service layer over HTTP.
type HandlerProvider struct {
	players  *playersvc.Service
	bets     *betsvc.Service
	ledger   *walletsvc.Service
	validate *validator.Validate
}

func NewHandler(playerSvc *playersvc.Service, betSvc *betsvc.Service, ledger *walletsvc.Service) *HandlerProvider {
	return &HandlerProvider{
		players:  playerSvc,
		bets:     betSvc,
		ledger:   ledger,
		validate: validator.New(),
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeBody parses and validates a JSON request body.
func (h *HandlerProvider) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "empty body")
			return false
		}

		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}

	err = h.validate.Struct(dst)
	if err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}

	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Sprintf("invalid field %q (%s)", verrs[0].Field(), verrs[0].Tag())
	}

	return "invalid request"
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("missing %s", name)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, err)
	}

	return id, nil
}

// writeDomainError maps service errors onto HTTP statuses: unknown
// entities to 404, state conflicts to 409, bad input to 400.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, players.ErrPlayerNotFound):
		writeError(w, http.StatusNotFound, "player not found")
	case errors.Is(err, wallets.ErrWalletNotFound):
		writeError(w, http.StatusNotFound, "wallet not found")
	case errors.Is(err, games.ErrGameNotFound):
		writeError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, bets.ErrBetNotFound):
		writeError(w, http.StatusNotFound, "bet not found")
	case errors.Is(err, wallets.ErrInsufficientBalance):
		writeError(w, http.StatusConflict, "insufficient balance")
	case errors.Is(err, betsvc.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "bet already cancelled or settled")
	case errors.Is(err, players.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "username already taken")
	case errors.Is(err, players.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, betsvc.ErrBelowMinimum):
		writeError(w, http.StatusBadRequest, "bet amount below game minimum")
	case errors.Is(err, betsvc.ErrInvalidCurrency):
		writeError(w, http.StatusBadRequest, "bet currency does not match game currency")
	case errors.Is(err, walletsvc.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "amount must be positive")
	case errors.Is(err, playersvc.ErrWeakPassword):
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
	default:
		slog.Error("unhandled service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
