// Package ws delivers live match snapshots to connected players. It is a
// best-effort presentation channel: matches resolve whether or not anyone is
// listening, and a consumer that misses an event catches up from the next
// full snapshot or by fetching the match over HTTP.
package ws

import (
	"encoding/json"
	"sync"

	"cardclash/internal/arena"
	"cardclash/internal/domain"
	"cardclash/internal/logger"
)

// Message is the wire envelope pushed to clients.
type Message struct {
	Type  string        `json:"type"`
	Match *domain.Match `json:"match"`
}

// Hub fans match events out to the clients of both seated wallets. It
// implements the arena notifier port.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]bool)}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.Wallet]
	if !ok {
		set = make(map[*Client]bool)
		h.clients[c.Wallet] = set
	}
	set[c] = true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[c.Wallet]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.Wallet)
		}
	}
}

// Publish sends the snapshot to every connection of both seats. Slow clients
// are skipped rather than awaited; the channel is presentation only.
func (h *Hub) Publish(event arena.Event, m *domain.Match) {
	for _, seat := range []domain.Seat{m.SeatA, m.SeatB} {
		if seat.Bot {
			continue
		}
		h.sendTo(seat.Wallet, string(event), m.ViewFor(seat.Wallet))
	}
}

func (h *Hub) sendTo(wallet, event string, m *domain.Match) {
	data, err := json.Marshal(Message{Type: event, Match: m})
	if err != nil {
		logger.Error("ws marshal failed", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[wallet] {
		select {
		case c.send <- data:
		default:
			logger.Warn("ws client send buffer full, dropping event",
				"wallet", wallet, "event", event)
		}
	}
}
