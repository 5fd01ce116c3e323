// Package messaging defines interfaces for real-time communication.
package messaging

import "time"

// Event types pushed to preview clients.
const (
	EventConfigUpdated = "config.updated"
	EventPing          = "ping"
)

// Event is one message on the live-preview channel.
type Event struct {
	Type      string    `json:"type"`
	TenantID  string    `json:"tenantId"`
	Keys      []string  `json:"keys,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Broadcaster pushes events to every preview client of a tenant.
type Broadcaster interface {
	Publish(tenantID string, event Event)
	ClientCount(tenantID string) int
}
