// Package telemetry streams per-tick bot state to debugging frontends
// over WebSocket. Frames are fire-and-forget: slow or dead clients are
// dropped rather than stalling the tick loop.
package telemetry

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins - configure properly in production
	},
}

// Frame is one broadcast unit.
type Frame struct {
	Type    string `json:"type"`
	Tick    int    `json:"tick"`
	Payload any    `json:"payload,omitempty"`
}

type client struct {
	conn     *websocket.Conn
	sendChan chan Frame
}

// Hub accepts WebSocket subscribers and fans frames out to them.
type Hub struct {
	log *zap.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewHub returns an empty hub.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{log: log, clients: make(map[*client]struct{})}
}

// Handler upgrades an HTTP request into a telemetry subscription.
func (h *Hub) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{conn: conn, sendChan: make(chan Frame, 256)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.log.Info("telemetry client connected", zap.String("remote", conn.RemoteAddr().String()))

	go c.writePump(h)
	c.readPump(h)
}

// Broadcast sends a frame to every subscriber. Clients with a full
// queue are disconnected.
func (h *Hub) Broadcast(frame Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.sendChan <- frame:
		default:
			delete(h.clients, c)
			close(c.sendChan)
		}
	}
}

// Clients returns the subscriber count.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.sendChan)
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.sendChan)
	}
	h.mu.Unlock()
}

func (c *client) writePump(h *Hub) {
	defer c.conn.Close()
	for frame := range c.sendChan {
		if err := c.conn.WriteJSON(frame); err != nil {
			h.drop(c)
			return
		}
	}
}

// readPump discards inbound messages; telemetry is one-way. It exists
// to notice the peer closing.
func (c *client) readPump(h *Hub) {
	defer c.conn.Close()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.drop(c)
			return
		}
	}
}
