// internal/websocket/hub.go
package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gryphathie/KombuchaApp/internal/domain/reminder"

	"go.uber.org/zap"
)

// Event is the envelope pushed to connected consoles.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

const (
	EventReminderStatus = "reminder.status_changed"
	EventReminderStats  = "reminder.stats"
)

// Hub fans reminder events out to every connected console. The console is a
// single-tenant tool, so there is no per-user routing: everyone sees the
// same ledger and the same badge.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	// Closed once Run stops; clients select on it so their register and
	// unregister sends cannot block after shutdown.
	done chan struct{}

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("websocket client connected", zap.Int("clients", h.ClientCount()))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Info("websocket client disconnected", zap.Int("clients", h.ClientCount()))

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					// Slow consumer: drop it rather than block the hub.
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// ReminderStatusChanged implements the reminder service's Broadcaster.
func (h *Hub) ReminderStatusChanged(r reminder.Reminder, stats reminder.Stats) {
	h.publish(Event{Type: EventReminderStatus, Data: r})
	h.publish(Event{Type: EventReminderStats, Data: stats})
}

func (h *Hub) publish(ev Event) {
	raw, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("failed to marshal websocket event", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- raw:
	default:
		h.logger.Warn("websocket broadcast buffer full, dropping event", zap.String("type", ev.Type))
	}
}

// ClientCount reports how many consoles are connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) shutdown() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		_ = client.conn.Close()
	}
	h.clients = make(map[*Client]bool)
}
