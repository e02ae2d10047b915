package sse

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// EventType defines the SSE event name.
type EventType string

const (
	EventSessionSignedIn  EventType = "session.signed_in"
	EventSessionSignedOut EventType = "session.signed_out"
	EventOrderPlaced      EventType = "order.placed"
)

// StoreEvent is the payload broadcast to connected storefront clients.
// Session events let a UI react to sign-in/out happening in another tab;
// order events confirm checkout completion.
type StoreEvent struct {
	Event      EventType `json:"event"`
	UserID     string    `json:"userId,omitempty"`
	Email      string    `json:"email,omitempty"`
	OrderID    string    `json:"orderId,omitempty"`
	TotalCents *int      `json:"totalCents,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Client represents a connected SSE client.
type Client struct {
	ID     string
	Events chan []byte
}

// Hub manages SSE client connections and broadcasts. It is also the
// in-process session-change subscription point: anything interested in
// auth transitions registers a client and watches for session events.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a new SSE hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a new client and returns it for streaming.
func (h *Hub) Register(clientID string) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := &Client{
		ID:     clientID,
		Events: make(chan []byte, 64),
	}
	h.clients[clientID] = c
	log.Info().Str("client_id", clientID).Int("total_clients", len(h.clients)).Msg("SSE client connected")
	return c
}

// Unregister removes a client and closes its channel.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[clientID]; ok {
		close(c.Events)
		delete(h.clients, clientID)
		log.Info().Str("client_id", clientID).Int("total_clients", len(h.clients)).Msg("SSE client disconnected")
	}
}

// Broadcast sends an event to every connected client. Slow clients whose
// buffers are full skip the event instead of blocking the sender.
func (h *Hub) Broadcast(ev StoreEvent) {
	ev.Timestamp = time.Now()
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal store event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.Events <- data:
		default:
			log.Warn().Str("client_id", c.ID).Msg("SSE client buffer full, dropping event")
		}
	}
}
