// server/internal/socket/hub.go
package socket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Lifecycle event types pushed to dashboards.
const (
	EventRequestCreated   = "request_created"
	EventRequestAssigned  = "request_assigned"
	EventRequestCompleted = "request_completed"
)

// Event is the JSON envelope sent over the socket.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// client serializes writes to its connection; gorilla allows only one
// concurrent writer per Conn.
type client struct {
	conn *websocket.Conn
	role string
	mu   sync.Mutex
}

func (c *client) write(message []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, message)
}

// Hub manages all WebSocket clients, keyed by user id.
type Hub struct {
	clients map[string]*client
	mu      sync.RWMutex
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
	}
}

// Register adds a client. A reconnect replaces the previous connection.
func (h *Hub) Register(userID, role string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userID] = &client{conn: conn, role: role}
	log.Printf("WebSocket client registered: %s (%s)", userID, role)
}

// Unregister removes a client from the Hub.
func (h *Hub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID]; ok {
		delete(h.clients, userID)
		log.Printf("WebSocket client unregistered: %s", userID)
	}
}

// SendToUser pushes an event to one user. An offline user is not an
// error; a write failure is logged and swallowed.
func (h *Hub) SendToUser(userID string, event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("WebSocket marshal failed for event %s: %v", event.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	c, ok := h.clients[userID]
	if !ok {
		return
	}
	if err := c.write(message); err != nil {
		log.Printf("WebSocket send to %s failed: %v", userID, err)
	}
}

// BroadcastToRole pushes an event to every connected user with the role.
func (h *Hub) BroadcastToRole(role string, event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("WebSocket marshal failed for event %s: %v", event.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for userID, c := range h.clients {
		if c.role != role {
			continue
		}
		if err := c.write(message); err != nil {
			log.Printf("WebSocket send to %s failed: %v", userID, err)
		}
	}
}
