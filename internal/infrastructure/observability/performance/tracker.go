package performance

import (
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Tracker aggregates markers per tenant and operation and warns about slow ones
type Tracker struct {
	mu            sync.RWMutex
	stats         map[string]map[string]*OperationStats // tenant -> operation -> stats
	slowThreshold time.Duration
	logger        *slog.Logger
	started       time.Time
}

// NewTracker creates a tracker. A nil logger disables slow-operation warnings.
func NewTracker(slowThreshold time.Duration, logger *slog.Logger) *Tracker {
	if slowThreshold <= 0 {
		slowThreshold = 500 * time.Millisecond
	}
	return &Tracker{
		stats:         make(map[string]map[string]*OperationStats),
		slowThreshold: slowThreshold,
		logger:        logger,
		started:       time.Now(),
	}
}

// StartOperation creates a marker bound to this tracker
func (t *Tracker) StartOperation(operation, tenantID string) *Marker {
	return &Marker{
		Operation: operation,
		TenantID:  tenantID,
		StartTime: time.Now(),
		Success:   true,
		tracker:   t,
	}
}

func (t *Tracker) record(m *Marker) {
	t.mu.Lock()
	byOp, ok := t.stats[m.TenantID]
	if !ok {
		byOp = make(map[string]*OperationStats)
		t.stats[m.TenantID] = byOp
	}
	s, ok := byOp[m.Operation]
	if !ok {
		s = &OperationStats{Operation: m.Operation}
		byOp[m.Operation] = s
	}
	s.Count++
	s.Total += m.Duration
	if m.Duration > s.Max {
		s.Max = m.Duration
	}
	if !m.Success {
		s.Failures++
	}
	slow := m.Duration > t.slowThreshold
	if slow {
		s.Slow++
	}
	t.mu.Unlock()

	if slow && t.logger != nil {
		t.logger.Warn("Slow operation",
			"operation", m.Operation,
			"tenantId", m.TenantID,
			"duration", m.Duration,
			"threshold", t.slowThreshold)
	}
}

// Snapshot returns a copy of the stats for one tenant, sorted by operation name
func (t *Tracker) Snapshot(tenantID string) []OperationStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	byOp := t.stats[tenantID]
	out := make([]OperationStats, 0, len(byOp))
	for _, s := range byOp {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Operation < out[j].Operation })
	return out
}

// Uptime reports how long the tracker has been running
func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.started)
}
