// websocket/hub.go
package websocket

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type EventType string

const (
	EventApplicationSubmitted  EventType = "APPLICATION_SUBMITTED"
	EventPaymentReferenceAdded EventType = "PAYMENT_REFERENCE_ADDED"
	EventPaymentVerified       EventType = "PAYMENT_VERIFIED"
	EventApplicationRejected   EventType = "APPLICATION_REJECTED"
	EventSubmissionRelayed     EventType = "SUBMISSION_RELAYED"
)

// Event is what connected admin dashboards receive.
type Event struct {
	Type          EventType   `json:"type"`
	ApplicationID uuid.UUID   `json:"application_id"`
	Payload       interface{} `json:"payload,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
}

type Client struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Conn   *websocket.Conn
	Hub    *Hub
	Send   chan Event
}

// Hub fans application events out to every connected admin client.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.broadcastToAll(event)
		}
	}
}

// Notify publishes an application event to every connected dashboard.
// Safe to call from request handlers; never blocks on slow clients.
func (h *Hub) Notify(eventType EventType, applicationID uuid.UUID, payload interface{}) {
	event := Event{
		Type:          eventType,
		ApplicationID: applicationID,
		Payload:       payload,
		Timestamp:     time.Now(),
	}
	select {
	case h.broadcast <- event:
	default:
		// nobody is running the hub (tests); drop the event
	}
}

func (h *Hub) broadcastToAll(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.Send <- event:
		default:
			close(client.Send)
			delete(h.clients, client)
		}
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
