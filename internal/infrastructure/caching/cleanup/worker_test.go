package cleanup

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/caching/types"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
)

type countingCache struct {
	mu     sync.Mutex
	purges map[string]int
}

func (c *countingCache) GetSite(string) (*website.Site, bool) { return nil, false }
func (c *countingCache) SetSite(string, *website.Site) {}
func (c *countingCache) InvalidateSite(string) {}
func (c *countingCache) GetPage(string, string) (string, bool) { return "", false }
func (c *countingCache) SetPage(string, string, string) {}
func (c *countingCache) InvalidatePages(string) {}
func (c *countingCache) InitializeTenant(string) {}
func (c *countingCache) TenantIDs() []string { return []string{"a", "b"} }
func (c *countingCache) Stats(id string) types.CacheStats { return types.CacheStats{TenantID: id} }

func (c *countingCache) PurgeExpired(tenantID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purges[tenantID]++
	return 1
}

func (c *countingCache) count(tenantID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.purges[tenantID]
}

func TestRunOncePurgesEveryTenant(t *testing.T) {
	cache := &countingCache{purges: map[string]int{}}
	w := NewWorker(cache, &Config{CleanupInterval: time.Hour, VerboseReporting: true}, logging.NewNopLogger())

	assert.Equal(t, 2, w.RunOnce(context.Background()))
	assert.Equal(t, 1, cache.count("a"))
	assert.Equal(t, 1, cache.count("b"))
}

func TestRunOnceSweepsPools(t *testing.T) {
	cache := &countingCache{purges: map[string]int{}}
	sweeps := 0
	w := NewWorker(cache, &Config{CleanupInterval: time.Hour}, logging.NewNopLogger()).
		WithPoolSweep(func() int { sweeps++; return 1 })

	w.RunOnce(context.Background())
	w.RunOnce(context.Background())
	assert.Equal(t, 2, sweeps)
}

func TestWorkerStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	cache := &countingCache{purges: map[string]int{}}
	w := NewWorker(cache, &Config{CleanupInterval: 5 * time.Millisecond}, logging.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return cache.count("a") > 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
