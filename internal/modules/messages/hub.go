package messages

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Event is the single frame shape pushed over the socket. Type keys
// the client dispatch: "message", "offer", "solo_offer", "job_filled",
// "dropout", "room_completed", "job_completed".
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub tracks one live socket per user. A second connection for the
// same user replaces the first.
type Hub struct {
	conns map[int64]*websocket.Conn
	mu    sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{conns: make(map[int64]*websocket.Conn)}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.conns[userID]; ok && old != nil {
		_ = old.Close()
	}
	h.conns[userID] = conn
}

func (h *Hub) Unregister(userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.conns[userID]; ok && conn != nil {
		_ = conn.Close()
		delete(h.conns, userID)
	}
}

// Push writes one event to a user's socket. A failed write drops the
// connection; the user re-syncs over HTTP on reconnect.
func (h *Hub) Push(userID int64, ev Event) bool {
	h.mu.RLock()
	conn, ok := h.conns[userID]
	h.mu.RUnlock()

	if !ok || conn == nil {
		return false
	}
	if err := conn.WriteJSON(ev); err != nil {
		h.Unregister(userID)
		return false
	}
	return true
}

func (h *Hub) IsOnline(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.conns[userID]
	return ok
}

func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.conns)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, conn := range h.conns {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.conns, userID)
	}
}
