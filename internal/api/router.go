package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter registers every API endpoint. The websocket handler is
// passed in separately so offline tools can mount the API without a
// hub.
func NewRouter(h *HandlerProvider, ws http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/players", h.RegisterHandler)
		r.Get("/players/{playerId}", h.GetProfileHandler)
		r.Get("/players/{playerId}/bets", h.ListPlayerBetsHandler)

		r.Post("/bets", h.PlaceBetHandler)
		r.Get("/bets/{betId}", h.GetBetHandler)
		r.Post("/bets/{betId}/cancel", h.CancelBetHandler)
		r.Post("/bets/{betId}/settle", h.SettleBetHandler)

		r.Get("/wallets/{walletId}/balance", h.GetBalanceHandler)
		r.Get("/wallets/{walletId}/transactions", h.ListTransactionsHandler)
		r.Post("/wallets/{walletId}/checkpoint", h.CheckpointHandler)
	})

	if ws != nil {
		r.Get("/ws", ws.ServeHTTP)
	}

	return r
}
