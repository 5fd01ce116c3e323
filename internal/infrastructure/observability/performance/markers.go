// Package performance provides lightweight operation timing for sitecraft
// with per-tenant aggregation.
package performance

import "time"

// Marker represents a single performance measurement for an operation
type Marker struct {
	Operation string         `json:"operation"` // e.g. "site:compose", "media:upload"
	TenantID  string         `json:"tenantId"`
	StartTime time.Time      `json:"startTime"`
	EndTime   time.Time      `json:"endTime"`
	Duration  time.Duration  `json:"duration"`
	Success   bool           `json:"success"`
	Error     string         `json:"error,omitempty"`
	Metadata  map[string]any `json:"metadata"`
	Completed bool           `json:"completed"`

	tracker *Tracker
}

// Complete marks the operation as finished and reports it to the tracker
func (m *Marker) Complete() {
	if m == nil || m.Completed {
		return
	}

	m.EndTime = time.Now()
	m.Duration = m.EndTime.Sub(m.StartTime)
	m.Completed = true

	if m.tracker != nil {
		m.tracker.record(m)
	}
}

// SetSuccess marks the operation as successful or failed
func (m *Marker) SetSuccess(success bool) {
	m.Success = success
}

// SetError sets an error message and marks the operation as failed
func (m *Marker) SetError(err error) {
	if err != nil {
		m.Error = err.Error()
		m.Success = false
	}
}

// AddMetadata adds key-value metadata to the marker
func (m *Marker) AddMetadata(key string, value any) {
	if m.Metadata == nil {
		m.Metadata = make(map[string]any)
	}
	m.Metadata[key] = value
}

// OperationStats aggregates completed markers for one operation name
type OperationStats struct {
	Operation string        `json:"operation"`
	Count     int           `json:"count"`
	Failures  int           `json:"failures"`
	Total     time.Duration `json:"total"`
	Max       time.Duration `json:"max"`
	Slow      int           `json:"slow"`
}

// Average returns the mean duration, or zero with no samples
func (s OperationStats) Average() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}
