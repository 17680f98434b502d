// Package livereload implements the live-update transport: a WebSocket hub
// that pushes typed change notifications to connected development clients.
package livereload

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ripplebuild/ripple/internal/core/domain"
	"github.com/ripplebuild/ripple/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingEvery  = (pongWait * 9) / 10
	sendBuffer = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		// Development-only transport; any local origin may connect.
		return true
	},
}

// message is the wire format pushed to clients.
type message struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

// client is one live connection. ready mirrors the transport's open state
// and is consulted before every send.
type client struct {
	conn  *websocket.Conn
	send  chan message
	done  chan struct{}
	once  sync.Once
	ready atomic.Bool
}

// close marks the client not ready and releases its pumps. Safe to call
// more than once.
func (c *client) close() {
	c.ready.Store(false)
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// Hub maintains the set of live client connections and fans messages out to
// them. A send failure on one connection never affects the others.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	logger  ports.Logger
	closed  bool
}

var _ ports.Notifier = (*Hub)(nil)

// NewHub creates an empty hub.
func NewHub(logger ports.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		logger:  logger,
	}
}

// ServeHTTP upgrades the request to a WebSocket connection and registers it
// with the hub until the peer disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error to the peer.
		h.logger.Error(zerr.Wrap(err, "websocket upgrade failed"))
		return
	}

	c := &client{
		conn: conn,
		send: make(chan message, sendBuffer),
		done: make(chan struct{}),
	}
	c.ready.Store(true)

	if !h.register(c) {
		return
	}

	go c.writePump(h)
	c.readPump(h)
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		c.close()
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

// unregister removes the client immediately; it cannot be notified after
// removal.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
}

// Broadcast sends {kind, path} to every ready client. Non-ready clients are
// skipped; a client whose buffer is full is dropped rather than queued into.
func (h *Hub) Broadcast(kind domain.NotifyKind, displayPath string) {
	msg := message{Type: string(kind), Path: displayPath}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if !c.ready.Load() {
			continue
		}
		select {
		case c.send <- msg:
		case <-c.done:
		default:
			// Slow consumer; drop the connection instead of queueing.
			h.logger.Warn("dropping unresponsive live-update client")
			h.unregister(c)
		}
	}
}

// ClientCount returns the number of currently registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new registrations.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}

// writePump serializes all writes to one connection and keeps it alive with
// pings. A write failure tears the connection down; the hub and the other
// clients are unaffected.
func (c *client) writePump(h *Hub) {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				h.sendFailed(c, err)
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				h.sendFailed(c, err)
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				h.sendFailed(c, err)
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.sendFailed(c, err)
				return
			}
		}
	}
}

func (h *Hub) sendFailed(c *client, err error) {
	h.logger.Error(zerr.Wrap(err, "live-update send failed"))
	h.unregister(c)
}

// readPump discards inbound traffic; the core requires no client-to-server
// messages. It exists to observe pongs and connection closure.
func (c *client) readPump(h *Hub) {
	defer h.unregister(c)

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
