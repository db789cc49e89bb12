package notify

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub is a websocket Notifier. Clients connect to the /ws endpoint with
// their player id and receive JSON envelopes {"event": ..., "data": ...}
// for everything that happens to their bets and wallets.
type Hub struct {
	mu      sync.Mutex
	clients map[uuid.UUID]map[*websocket.Conn]struct{}

	upgrader websocket.Upgrader
}

var _ Notifier = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The dashboard runs on a different origin in dev.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Notify pushes the event to every open connection of the player.
// Connections that fail to write are dropped.
func (h *Hub) Notify(playerID uuid.UUID, event string, payload any) {
	msg, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		slog.Error("notify: marshal payload", "event", event, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients[playerID] {
		err = conn.WriteMessage(websocket.TextMessage, msg)
		if err != nil {
			slog.Warn("notify: dropping dead connection", "player_id", playerID, "error", err)
			h.removeLocked(playerID, conn)
		}
	}
}

// ServeHTTP upgrades the request and keeps the connection registered
// until the client goes away. The player id comes from the player_id
// query parameter.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	playerID, err := uuid.Parse(r.URL.Query().Get("player_id"))
	if err != nil {
		http.Error(w, "invalid player_id", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("notify: websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	if h.clients[playerID] == nil {
		h.clients[playerID] = make(map[*websocket.Conn]struct{})
	}
	h.clients[playerID][conn] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.removeLocked(playerID, conn)
		h.mu.Unlock()
	}()

	// Drain client frames; the hub only ever writes.
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			return
		}
	}
}

func (h *Hub) removeLocked(playerID uuid.UUID, conn *websocket.Conn) {
	conns, ok := h.clients[playerID]
	if !ok {
		return
	}

	if _, ok := conns[conn]; ok {
		delete(conns, conn)
		_ = conn.Close()
	}

	if len(conns) == 0 {
		delete(h.clients, playerID)
	}
}
