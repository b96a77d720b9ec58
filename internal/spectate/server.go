package spectate

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = 54 * time.Second
	maxMsgSize  = 4096
	sendBufSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server exposes the spectate HTTP surface: a dev token endpoint and a
// WebSocket stream per match.
type Server struct {
	hub    *Hub
	jwtMgr *JWTManager
}

// NewServer builds a Server bound to hub and jwtMgr.
func NewServer(hub *Hub, jwtMgr *JWTManager) *Server {
	return &Server{hub: hub, jwtMgr: jwtMgr}
}

// Routes registers the server's handlers on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/auth/dev", s.handleDevAuth)
	mux.HandleFunc("/matches/", s.handleStream)
}

// handleDevAuth issues a bearer token for whatever subject name the
// client supplies, with no further verification (spec.md has no
// identity system; this only gates the optional spectate add-on).
func (s *Server) handleDevAuth(w http.ResponseWriter, r *http.Request) {
	subject := r.URL.Query().Get("name")
	if subject == "" {
		subject = "spectator"
	}
	token, err := s.jwtMgr.IssueToken(subject)
	if err != nil {
		http.Error(w, `{"error":"could not issue token"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"access_token": token})
}

// handleStream upgrades GET /matches/{id}/stream?token=... to a
// WebSocket connection subscribed to that match's ledger entries.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	matchID, ok := parseMatchID(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, `{"error":"missing token parameter"}`, http.StatusUnauthorized)
		return
	}
	claims, err := s.jwtMgr.ValidateToken(tokenStr)
	if err != nil {
		http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("spectate websocket upgrade failed")
		return
	}

	client := &Conn{conn: conn, subject: claims.Subject, send: make(chan []byte, sendBufSize)}
	s.hub.Register(client)
	s.hub.Subscribe(client, matchID)

	go s.writePump(client)
	go s.readPump(client)

	log.Info().Str("subject", claims.Subject).Str("match", matchID).Msg("spectator connected")
}

// readPump drains (and discards) client frames purely to detect
// disconnects and respond to pongs; spectators never send commands.
func (s *Server) readPump(c *Conn) {
	defer func() {
		s.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (s *Server) writePump(c *Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// parseMatchID extracts {id} from "/matches/{id}/stream".
func parseMatchID(path string) (string, bool) {
	const prefix = "/matches/"
	const suffix = "/stream"
	if len(path) <= len(prefix)+len(suffix) {
		return "", false
	}
	if path[:len(prefix)] != prefix {
		return "", false
	}
	rest := path[len(prefix):]
	if len(rest) <= len(suffix) || rest[len(rest)-len(suffix):] != suffix {
		return "", false
	}
	return rest[:len(rest)-len(suffix)], true
}
