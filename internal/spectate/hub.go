package spectate

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/htamlive/cliquey-dtai-judge/internal/ledger"
)

// Event is the envelope for every message the hub broadcasts.
type Event struct {
	Type    string        `json:"type"`
	MatchID string        `json:"match_id"`
	Entry   *ledger.Entry `json:"entry,omitempty"`
}

// Conn wraps a WebSocket connection with its subscriber identity.
type Conn struct {
	conn    *websocket.Conn
	subject string
	send    chan []byte
}

// Hub manages WebSocket connections and per-match subscriptions,
// mirroring the teacher's handler.Hub (games -> connections) with
// "game" renamed to "match".
type Hub struct {
	mu          sync.RWMutex
	connections map[*Conn]bool
	matches     map[string]map[*Conn]bool
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		connections: make(map[*Conn]bool),
		matches:     make(map[string]map[*Conn]bool),
	}
}

// Register adds a connection to the hub.
func (h *Hub) Register(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = true
}

// Unregister removes a connection and all its subscriptions.
func (h *Hub) Unregister(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.connections, c)
	for matchID, conns := range h.matches {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.matches, matchID)
		}
	}
	close(c.send)
}

// Subscribe adds a connection to a match's broadcast set.
func (h *Hub) Subscribe(c *Conn, matchID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.matches[matchID] == nil {
		h.matches[matchID] = make(map[*Conn]bool)
	}
	h.matches[matchID][c] = true
}

// BroadcastEntry sends a ledger entry to every connection subscribed
// to matchID. Its caller is cmd/spectate's Redis relay (subscriber to a
// match's pub/sub channel).
func (h *Hub) BroadcastEntry(matchID string, entry ledger.Entry) {
	data, err := json.Marshal(Event{Type: "ledger_entry", MatchID: matchID, Entry: &entry})
	if err != nil {
		log.Error().Err(err).Str("match", matchID).Msg("failed to marshal ledger event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.matches[matchID] {
		select {
		case c.send <- data:
		default:
			log.Warn().Str("match", matchID).Msg("dropping spectate message, buffer full")
		}
	}
}

// ConnectionCount returns the total number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}
