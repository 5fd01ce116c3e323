// Package messaging provides the tenant-scoped live-preview hub.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrHubClosed is returned when registering after the hub stopped.
var ErrHubClosed = errors.New("preview hub is closed")

// Client is a single connected preview tab.
type Client struct {
	TenantID string
	Send     chan []byte
}

// NewClient allocates a client with a small send buffer.
func NewClient(tenantID string) *Client {
	return &Client{TenantID: tenantID, Send: make(chan []byte, 16)}
}

// Hub manages connected preview clients per tenant.
type Hub struct {
	tenantClients map[string]map[*Client]bool
	register      chan *Client
	unregister    chan *Client
	stopped       chan struct{}
	pingInterval  time.Duration
	logger        *slog.Logger
	mu            sync.RWMutex
}

var _ Broadcaster = (*Hub)(nil)

// NewHub creates a hub. A zero pingInterval disables heartbeats.
func NewHub(pingInterval time.Duration, logger *slog.Logger) *Hub {
	return &Hub{
		tenantClients: make(map[string]map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		stopped:       make(chan struct{}),
		pingInterval:  pingInterval,
		logger:        logger,
	}
}

// Run is the hub's main loop. It returns when ctx is cancelled, after
// closing every client's send channel.
func (h *Hub) Run(ctx context.Context) {
	var tick <-chan time.Time
	if h.pingInterval > 0 {
		ticker := time.NewTicker(h.pingInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.tenantClients[client.TenantID]; !ok {
				h.tenantClients[client.TenantID] = make(map[*Client]bool)
			}
			h.tenantClients[client.TenantID][client] = true
			h.mu.Unlock()
			h.debug("Preview client registered", "tenantId", client.TenantID)

		case client := <-h.unregister:
			h.remove(client)
			h.debug("Preview client unregistered", "tenantId", client.TenantID)

		case now := <-tick:
			h.mu.RLock()
			tenantIDs := make([]string, 0, len(h.tenantClients))
			for tenantID := range h.tenantClients {
				tenantIDs = append(tenantIDs, tenantID)
			}
			h.mu.RUnlock()
			for _, tenantID := range tenantIDs {
				h.Publish(tenantID, Event{Type: EventPing, TenantID: tenantID, UpdatedAt: now})
			}
		}
	}
}

// Register queues a client for registration.
func (h *Hub) Register(client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.stopped:
		return ErrHubClosed
	}
}

// Unregister queues a client for removal. Safe to call after Run returned.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.stopped:
	}
}

// Publish sends event to every client of tenantID. Slow clients whose
// buffer is full miss the event.
func (h *Hub) Publish(tenantID string, event Event) {
	if event.TenantID == "" {
		event.TenantID = tenantID
	}
	message, err := json.Marshal(event)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("Failed to marshal preview event", "error", err, "tenantId", tenantID)
		}
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.tenantClients[tenantID] {
		select {
		case client.Send <- message:
		default:
			if h.logger != nil {
				h.logger.Warn("Preview channel full, message dropped", "tenantId", tenantID, "type", event.Type)
			}
		}
	}
}

// ClientCount returns the number of connected clients for a tenant.
func (h *Hub) ClientCount(tenantID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.tenantClients[tenantID])
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.tenantClients[client.TenantID]
	if !ok {
		return
	}
	if _, ok := clients[client]; ok {
		delete(clients, client)
		close(client.Send)
		if len(clients) == 0 {
			delete(h.tenantClients, client.TenantID)
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	close(h.stopped)
	for tenantID, clients := range h.tenantClients {
		for client := range clients {
			close(client.Send)
		}
		delete(h.tenantClients, tenantID)
	}
}

func (h *Hub) debug(msg string, args ...any) {
	if h.logger != nil {
		h.logger.Debug(msg, args...)
	}
}
