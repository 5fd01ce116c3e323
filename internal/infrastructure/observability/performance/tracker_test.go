package performance

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerAggregatesMarkers(t *testing.T) {
	tracker := NewTracker(time.Hour, nil)

	m := tracker.StartOperation("site:compose", "acme")
	m.Complete()

	failed := tracker.StartOperation("site:compose", "acme")
	failed.SetError(errors.New("boom"))
	failed.Complete()
	failed.Complete()

	tracker.StartOperation("media:upload", "other").Complete()

	stats := tracker.Snapshot("acme")
	require.Len(t, stats, 1)
	assert.Equal(t, "site:compose", stats[0].Operation)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, 1, stats[0].Failures)
	assert.Zero(t, stats[0].Slow)
}

func TestTrackerCountsSlowOperations(t *testing.T) {
	tracker := NewTracker(time.Nanosecond, nil)

	m := tracker.StartOperation("db:load", "acme")
	time.Sleep(time.Millisecond)
	m.Complete()

	stats := tracker.Snapshot("acme")
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].Slow)
	assert.GreaterOrEqual(t, stats[0].Average(), time.Millisecond)
}
