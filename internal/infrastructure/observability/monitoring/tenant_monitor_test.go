package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRequestTracksErrorRateAndHealth(t *testing.T) {
	tm := NewTenantMonitor(DefaultHealthThresholds())

	for i := 0; i < 9; i++ {
		tm.RecordRequest("salone", 10*time.Millisecond, true)
	}
	m, ok := tm.GetMetrics("salone")
	require.True(t, ok)
	assert.Equal(t, int64(9), m.TotalRequests)
	assert.Equal(t, HealthHealthy, m.HealthStatus)

	tm.RecordRequest("salone", 10*time.Millisecond, false)
	m, _ = tm.GetMetrics("salone")
	assert.InDelta(t, 0.1, m.ErrorRate, 1e-9)
	assert.Equal(t, HealthDegraded, m.HealthStatus)

	tm.RecordRequest("salone", 10*time.Millisecond, false)
	m, _ = tm.GetMetrics("salone")
	assert.Equal(t, HealthUnhealthy, m.HealthStatus)
}

func TestCacheRatioNeedsSamples(t *testing.T) {
	th := DefaultHealthThresholds()
	th.MinCacheSamples = 4
	tm := NewTenantMonitor(th)

	for i := 0; i < 3; i++ {
		tm.RecordCacheOperation("salone", false)
	}
	m, _ := tm.GetMetrics("salone")
	assert.Equal(t, HealthHealthy, m.HealthStatus)

	tm.RecordCacheOperation("salone", false)
	m, _ = tm.GetMetrics("salone")
	assert.Equal(t, float64(0), m.CacheHitRatio)
	assert.Equal(t, HealthDegraded, m.HealthStatus)

	for i := 0; i < 4; i++ {
		tm.RecordCacheOperation("salone", true)
	}
	m, _ = tm.GetMetrics("salone")
	assert.InDelta(t, 0.5, m.CacheHitRatio, 1e-9)
	assert.Equal(t, HealthHealthy, m.HealthStatus)
}

func TestNilMonitorIsInert(t *testing.T) {
	var tm *TenantMonitor
	tm.RecordRequest("a", time.Second, false)
	tm.RecordCacheOperation("a", true)
	tm.Reset("a")
	assert.Nil(t, tm.GetAllMetrics())
	_, ok := tm.GetMetrics("a")
	assert.False(t, ok)
}

func TestGetAllMetricsSortedAndReset(t *testing.T) {
	tm := NewTenantMonitor(DefaultHealthThresholds())
	tm.RecordRequest("zeta", time.Millisecond, true)
	tm.RecordRequest("alpha", time.Millisecond, true)

	all := tm.GetAllMetrics()
	require.Len(t, all, 2)
	assert.Equal(t, "alpha", all[0].TenantID)

	tm.Reset("alpha")
	_, ok := tm.GetMetrics("alpha")
	assert.False(t, ok)
}
