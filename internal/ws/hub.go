package ws

import (
	"VendorChat/internal/lib/sl"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// Event is what the vendor dashboards receive.
type Event struct {
	Type     string      `json:"type"` // "new_message", "booking_confirmed"
	VendorID string      `json:"vendor_id"`
	Data     interface{} `json:"data"`
}

type outgoing struct {
	vendorID string
	data     []byte
}

// Hub keeps the connected dashboards and fans events out to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan outgoing
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	log        *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan outgoing, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log.With(sl.Module("ws.hub")),
	}
}

// Run is the event loop of the hub, it returns when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.log.With(slog.String("vendor", client.VendorID())).Debug("dashboard connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if !client.wants(msg.vendorID) {
					continue
				}
				select {
				case client.send <- msg.data:
				default:
					// slow reader
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// add registers the client, it reports false once the hub has stopped.
func (h *Hub) add(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues an event for every dashboard following the vendor.
// Events are dropped when the queue is full.
func (h *Hub) Broadcast(event, vendorID string, payload interface{}) {
	data, err := json.Marshal(&Event{Type: event, VendorID: vendorID, Data: payload})
	if err != nil {
		h.log.With(slog.String("event", event)).Error("encode event", sl.Err(err))
		return
	}
	select {
	case h.broadcast <- outgoing{vendorID: vendorID, data: data}:
	default:
		h.log.With(slog.String("event", event)).Warn("event queue full, dropped")
	}
}

// Clients returns the number of connected dashboards.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// clientEvent is a message sent by a dashboard.
type clientEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func (h *Hub) handleClientMessage(client *Client, raw []byte) {
	var event clientEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		h.log.Warn("failed to parse client ws message", sl.Err(err))
		return
	}

	switch event.Type {
	case "subscribe":
		var data struct {
			VendorID string `json:"vendor_id"`
		}
		if err := json.Unmarshal(event.Data, &data); err != nil {
			h.log.Warn("failed to parse subscribe data", sl.Err(err))
			return
		}
		client.setVendorID(data.VendorID)
	}
}
