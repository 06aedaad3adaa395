package ws

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client is one connected subscriber to balance runs.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func newClient(hub *Hub, conn *websocket.Conn, buffer int) *Client {
	return &Client{
		id:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, buffer),
	}
}

// Hub fans balance envelopes out to every connected client.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[*Client]bool),
		logger:  logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("balance subscriber connected", zap.String("client", c.id), zap.Int("clients", n))
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		h.logger.Debug("balance subscriber disconnected", zap.String("client", c.id), zap.Int("clients", n))
	}
}

// Publish wraps payload in a msgType envelope and sends it to all clients.
func (h *Hub) Publish(msgType string, payload any) error {
	msg, err := NewEnvelope(msgType, payload)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", msgType, err)
	}
	h.broadcast(msgType, msg)
	return nil
}

// Broadcast sends an already encoded envelope to all clients.
func (h *Hub) Broadcast(msg []byte) {
	h.broadcast("", msg)
}

func (h *Hub) broadcast(msgType string, msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			// Slow client; it catches up with the next run or balance:get.
			h.logger.Warn("client buffer full, dropping message",
				zap.String("client", c.id),
				zap.String("type", msgType),
			)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// publish queues one envelope for this client only, without blocking.
func (c *Client) publish(msgType string, payload any) error {
	msg, err := NewEnvelope(msgType, payload)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", msgType, err)
	}
	select {
	case c.send <- msg:
	default:
	}
	return nil
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
