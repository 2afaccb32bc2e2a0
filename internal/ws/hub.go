// Package ws fans inspector patches out to every connected websocket client.
package ws

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
)

const writeTimeout = 3 * time.Second

// Logger is satisfied by *logrus.Logger and *logrus.Entry.
type Logger interface {
	Printf(format string, v ...interface{})
}

type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	logger  Logger
}

// NewHub returns an empty hub. A nil logger discards write failures.
func NewHub(logger Logger) *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{}), logger: logger}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Send writes message to a single connection.
func (h *Hub) Send(ctx context.Context, conn *websocket.Conn, message []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, message)
}

// Broadcast writes message to every client. Clients whose write fails are
// closed and dropped.
func (h *Hub) Broadcast(ctx context.Context, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := h.Send(ctx, conn, message); err != nil {
			if h.logger != nil {
				h.logger.Printf("dropping websocket client: %v", err)
			}
			_ = conn.Close(websocket.StatusNormalClosure, "")
			delete(h.clients, conn)
		}
	}
}

// CloseAll closes every client, for shutdown.
func (h *Hub) CloseAll(reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.Close(websocket.StatusGoingAway, reason)
		delete(h.clients, conn)
	}
}
