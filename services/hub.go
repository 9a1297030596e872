// services/hub.go - WebSocket connection registry
package services

import (
	"log"
	"sync"
)

// Send channel buffer size per client; a full buffer drops the frame rather
// than blocking the broadcaster.
const sendBufferSize = 256

// SocketEvent is the wire frame exchanged over the live channel.
type SocketEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// SocketClient is one live connection. The transport layer owns the
// underlying socket and drains Send; the hub only routes frames into it.
type SocketClient struct {
	ID     string
	Send   chan SocketEvent

	mu     sync.RWMutex
	userID uint // 0 until authenticated
}

func NewSocketClient(id string) *SocketClient {
	return &SocketClient{
		ID:   id,
		Send: make(chan SocketEvent, sendBufferSize),
	}
}

// UserID returns the identity presented over the connection (0 if none).
func (c *SocketClient) UserID() uint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

func (c *SocketClient) setUserID(id uint) {
	c.mu.Lock()
	c.userID = id
	c.mu.Unlock()
}

// Queue delivers an event without blocking; a slow subscriber loses frames
// instead of stalling the sender.
func (c *SocketClient) Queue(event SocketEvent) {
	select {
	case c.Send <- event:
	default:
		log.Printf("⚠️ Send buffer full for client %s, dropping event type: %s", c.ID, event.Type)
	}
}

// Hub tracks live connections, their channel subscriptions (one logical
// channel per group), and the user → connection mapping. All broadcasts are
// fire-and-forget.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*SocketClient
	channels map[uint]map[string]*SocketClient // groupID -> clientID -> client
	users    map[uint]*SocketClient            // userID -> latest connection
}

func NewHub() *Hub {
	return &Hub{
		clients:  make(map[string]*SocketClient),
		channels: make(map[uint]map[string]*SocketClient),
		users:    make(map[uint]*SocketClient),
	}
}

// Register adds a connection to the registry.
func (h *Hub) Register(client *SocketClient) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()
}

// Unregister removes the connection and all of its channel subscriptions.
// Called on any disconnect, so an abruptly dropped connection never receives
// lingering broadcasts.
func (h *Hub) Unregister(client *SocketClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, client.ID)
	for groupID, subs := range h.channels {
		delete(subs, client.ID)
		if len(subs) == 0 {
			delete(h.channels, groupID)
		}
	}
	if uid := client.UserID(); uid != 0 && h.users[uid] == client {
		delete(h.users, uid)
	}
}

// Authenticate binds a user identity to the connection. The identity is
// taken as presented; it is not re-verified at this layer.
func (h *Hub) Authenticate(client *SocketClient, userID uint) {
	client.setUserID(userID)

	h.mu.Lock()
	h.users[userID] = client
	h.mu.Unlock()
}

// Subscribe adds the connection to a group's channel.
func (h *Hub) Subscribe(client *SocketClient, groupID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.channels[groupID]
	if !ok {
		subs = make(map[string]*SocketClient)
		h.channels[groupID] = subs
	}
	subs[client.ID] = client
}

// Unsubscribe removes the connection from a group's channel.
func (h *Hub) Unsubscribe(client *SocketClient, groupID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, ok := h.channels[groupID]; ok {
		delete(subs, client.ID)
		if len(subs) == 0 {
			delete(h.channels, groupID)
		}
	}
}

// Broadcast fans an event out to every connection subscribed to the group's
// channel. Non-blocking: delivery to each subscriber is best-effort.
func (h *Hub) Broadcast(groupID uint, eventType string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.channels[groupID] {
		client.Queue(SocketEvent{Type: eventType, Payload: payload})
	}
}

// FindClient resolves a user's current connection, if any.
func (h *Hub) FindClient(userID uint) (*SocketClient, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.users[userID]
	return client, ok
}

// IsSubscribed reports whether the connection is on the group's channel.
func (h *Hub) IsSubscribed(client *SocketClient, groupID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.channels[groupID][client.ID]
	return ok
}

// SubscriberCount returns the number of connections on a group's channel.
func (h *Hub) SubscriberCount(groupID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[groupID])
}
