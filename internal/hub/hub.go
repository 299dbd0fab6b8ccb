// Package hub fans stream events out to WebSocket subscribers grouped by
// session.
package hub

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ErrBufferFull is returned when a connection's send buffer is full.
var ErrBufferFull = errors.New("send buffer full")

// Conn is one subscriber connection. The transport layer owns the write
// pump draining Send; the hub only enqueues.
type Conn struct {
	ID        string
	SessionID string
	Send      chan []byte

	ws *websocket.Conn
}

// WS returns the underlying WebSocket connection, nil for detached test
// connections.
func (c *Conn) WS() *websocket.Conn { return c.ws }

// Hub tracks subscriber connections per session.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*Conn]struct{}
}

// New creates an empty hub.
func New() *Hub {
	return &Hub{
		sessions: make(map[string]map[*Conn]struct{}),
	}
}

// Attach registers a connection as a subscriber of the given session.
func (h *Hub) Attach(ws *websocket.Conn, sessionID string) *Conn {
	conn := &Conn{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Send:      make(chan []byte, 256),
		ws:        ws,
	}

	h.mu.Lock()
	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[*Conn]struct{})
	}
	h.sessions[sessionID][conn] = struct{}{}
	h.mu.Unlock()

	return conn
}

// Detach removes the connection and closes its send channel.
func (h *Hub) Detach(conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.sessions[conn.SessionID]
	if !ok {
		return
	}
	if _, attached := conns[conn]; !attached {
		return
	}
	delete(conns, conn)
	if len(conns) == 0 {
		delete(h.sessions, conn.SessionID)
	}
	close(conn.Send)
}

// Broadcast enqueues data for every subscriber of a session. Slow
// subscribers are dropped rather than blocking the stream.
func (h *Hub) Broadcast(sessionID string, data []byte) {
	h.mu.RLock()
	var stale []*Conn
	for conn := range h.sessions[sessionID] {
		select {
		case conn.Send <- data:
		default:
			log.Printf("ws connection %s buffer full, dropping", conn.ID)
			stale = append(stale, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range stale {
		h.Detach(conn)
	}
}

// BroadcastJSON marshals v and broadcasts it to a session.
func (h *Hub) BroadcastJSON(sessionID string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(sessionID, data)
	return nil
}

// SubscriberCount returns the number of subscribers for a session.
func (h *Hub) SubscriberCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}
