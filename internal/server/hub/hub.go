// Package hub fans backend events out to every connected desk over
// websocket. Events are {type, data} envelopes. Delivery is best effort:
// a desk whose send queue is full misses the event.
package hub

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/clinicdesk/internal/logging"
	"github.com/dmitrijs2005/clinicdesk/internal/server/metrics"
)

const DefaultSendQueueSize = 256

type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type Hub struct {
	log     logging.Logger
	metrics *metrics.Server

	mu      sync.RWMutex
	clients map[string]*Client
}

func New(log logging.Logger, m *metrics.Server) *Hub {
	if log == nil {
		log = logging.Discard()
	}
	return &Hub{
		log:     log.With("component", "hub"),
		metrics: m,
		clients: make(map[string]*Client),
	}
}

func (h *Hub) Join(c *Client) {
	h.mu.Lock()
	h.clients[c.SessionID] = c
	h.mu.Unlock()

	h.metrics.Connected()
	h.log.Info(context.Background(), "desk connected", "session_id", c.SessionID)
}

// Leave removes the client before closing it, so a broadcaster never holds a
// client that is being torn down.
func (h *Hub) Leave(sessionID string) {
	h.mu.Lock()
	c, ok := h.clients[sessionID]
	delete(h.clients, sessionID)
	h.mu.Unlock()

	if !ok {
		return
	}
	c.Close()
	h.metrics.Disconnected()
	h.log.Info(context.Background(), "desk disconnected", "session_id", sessionID)
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast encodes the event once and queues it for every client. It never
// blocks.
func (h *Hub) Broadcast(eventType string, data any) {
	frame, err := json.Marshal(Envelope{Type: eventType, Data: data})
	if err != nil {
		h.log.Error(context.Background(), "encode event", "type", eventType, "error", err)
		return
	}
	h.metrics.Broadcast(eventType)

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		select {
		case <-c.Done():
			continue
		default:
		}

		select {
		case c.Send <- frame:
		default:
			h.metrics.Dropped()
			h.log.Warn(context.Background(), "send queue full, dropping event", "session_id", c.SessionID, "type", eventType)
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]*Client)
	h.mu.Unlock()

	for _, c := range clients {
		c.Close()
		h.metrics.Disconnected()
	}
}
