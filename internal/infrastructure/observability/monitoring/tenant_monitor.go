// Package monitoring tracks per-tenant request and page-cache health.
package monitoring

import (
	"sort"
	"sync"
	"time"
)

// HealthStatus represents the health state of a tenant
type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthDegraded  HealthStatus = "degraded"
	HealthUnhealthy HealthStatus = "unhealthy"
	HealthUnknown   HealthStatus = "unknown"
)

// TenantMetrics is a point-in-time view of one tenant's traffic.
type TenantMetrics struct {
	TenantID        string        `json:"tenantId"`
	LastUpdated     time.Time     `json:"lastUpdated"`
	TotalRequests   int64         `json:"totalRequests"`
	FailedRequests  int64         `json:"failedRequests"`
	ErrorRate       float64       `json:"errorRate"`
	AvgResponseTime time.Duration `json:"avgResponseTime"`
	MaxResponseTime time.Duration `json:"maxResponseTime"`
	CacheHits       int64         `json:"cacheHits"`
	CacheMisses     int64         `json:"cacheMisses"`
	CacheHitRatio   float64       `json:"cacheHitRatio"`
	HealthStatus    HealthStatus  `json:"healthStatus"`
}

// HealthThresholds defines the thresholds for determining tenant health
type HealthThresholds struct {
	WarningResponseTime  time.Duration `json:"warningResponseTime"`
	CriticalResponseTime time.Duration `json:"criticalResponseTime"`
	WarningErrorRate     float64       `json:"warningErrorRate"`
	CriticalErrorRate    float64       `json:"criticalErrorRate"`
	WarningCacheHitRatio float64       `json:"warningCacheHitRatio"`
	MinCacheSamples      int64         `json:"minCacheSamples"`
}

// DefaultHealthThresholds returns the thresholds used by NewTenantMonitor.
func DefaultHealthThresholds() HealthThresholds {
	return HealthThresholds{
		WarningResponseTime:  500 * time.Millisecond,
		CriticalResponseTime: 2 * time.Second,
		WarningErrorRate:     0.05,
		CriticalErrorRate:    0.15,
		WarningCacheHitRatio: 0.5,
		MinCacheSamples:      20,
	}
}

// TenantMonitor aggregates request outcomes and page-cache lookups per
// tenant. A nil *TenantMonitor ignores all records.
type TenantMonitor struct {
	mu         sync.RWMutex
	metrics    map[string]*TenantMetrics
	thresholds HealthThresholds
	now        func() time.Time
}

func NewTenantMonitor(thresholds HealthThresholds) *TenantMonitor {
	return &TenantMonitor{
		metrics:    make(map[string]*TenantMetrics),
		thresholds: thresholds,
		now:        time.Now,
	}
}

// RecordRequest folds one request into the tenant's moving average.
func (tm *TenantMonitor) RecordRequest(tenantID string, duration time.Duration, success bool) {
	tm.update(tenantID, func(m *TenantMetrics) {
		m.TotalRequests++
		if !success {
			m.FailedRequests++
		}
		if m.TotalRequests == 1 {
			m.AvgResponseTime = duration
		} else {
			// EMA, alpha 0.1
			m.AvgResponseTime = time.Duration(float64(m.AvgResponseTime)*0.9 + float64(duration)*0.1)
		}
		if duration > m.MaxResponseTime {
			m.MaxResponseTime = duration
		}
		m.ErrorRate = float64(m.FailedRequests) / float64(m.TotalRequests)
	})
}

// RecordCacheOperation records a rendered-page cache lookup.
func (tm *TenantMonitor) RecordCacheOperation(tenantID string, hit bool) {
	tm.update(tenantID, func(m *TenantMetrics) {
		if hit {
			m.CacheHits++
		} else {
			m.CacheMisses++
		}
		m.CacheHitRatio = float64(m.CacheHits) / float64(m.CacheHits+m.CacheMisses)
	})
}

// GetMetrics returns a copy of the tenant's metrics.
func (tm *TenantMonitor) GetMetrics(tenantID string) (TenantMetrics, bool) {
	if tm == nil {
		return TenantMetrics{}, false
	}
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	m, ok := tm.metrics[tenantID]
	if !ok {
		return TenantMetrics{TenantID: tenantID, HealthStatus: HealthUnknown}, false
	}
	return *m, true
}

// GetAllMetrics returns copies for every tenant seen so far, ordered by ID.
func (tm *TenantMonitor) GetAllMetrics() []TenantMetrics {
	if tm == nil {
		return nil
	}
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	out := make([]TenantMetrics, 0, len(tm.metrics))
	for _, m := range tm.metrics {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TenantID < out[j].TenantID })
	return out
}

// Reset drops a tenant's metrics, e.g. after its registry entry is removed.
func (tm *TenantMonitor) Reset(tenantID string) {
	if tm == nil {
		return
	}
	tm.mu.Lock()
	delete(tm.metrics, tenantID)
	tm.mu.Unlock()
}

func (tm *TenantMonitor) update(tenantID string, fn func(*TenantMetrics)) {
	if tm == nil || tenantID == "" {
		return
	}
	tm.mu.Lock()
	defer tm.mu.Unlock()

	m, ok := tm.metrics[tenantID]
	if !ok {
		m = &TenantMetrics{TenantID: tenantID}
		tm.metrics[tenantID] = m
	}
	fn(m)
	m.LastUpdated = tm.now()
	m.HealthStatus = tm.health(m)
}

func (tm *TenantMonitor) health(m *TenantMetrics) HealthStatus {
	t := tm.thresholds
	critical, warning := 0, 0

	switch {
	case m.AvgResponseTime > t.CriticalResponseTime:
		critical++
	case m.AvgResponseTime > t.WarningResponseTime:
		warning++
	}
	switch {
	case m.ErrorRate > t.CriticalErrorRate:
		critical++
	case m.ErrorRate > t.WarningErrorRate:
		warning++
	}
	// a cold cache says nothing until enough lookups have happened
	if m.CacheHits+m.CacheMisses >= t.MinCacheSamples && m.CacheHitRatio < t.WarningCacheHitRatio {
		warning++
	}

	switch {
	case critical > 0:
		return HealthUnhealthy
	case warning > 0:
		return HealthDegraded
	}
	return HealthHealthy
}
