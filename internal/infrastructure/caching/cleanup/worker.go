// Package cleanup provides the background cache eviction worker
package cleanup

import (
	"context"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/caching/interfaces"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
)

// Worker handles background cache cleanup operations
type Worker struct {
	cache      interfaces.Cache
	config     *Config
	logger     *logging.ChanneledLogger
	sweepPools func() int
}

// NewWorker creates a new cleanup worker with injected configuration
func NewWorker(cache interfaces.Cache, config *Config, logger *logging.ChanneledLogger) *Worker {
	return &Worker{
		cache:  cache,
		config: config,
		logger: logger,
	}
}

// WithPoolSweep adds a connection-pool sweep to every pass. sweep returns
// the number of connections it closed.
func (w *Worker) WithPoolSweep(sweep func() int) *Worker {
	w.sweepPools = sweep
	return w
}

// Start runs until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.CleanupInterval)
	defer ticker.Stop()

	w.logger.Cache().Info("Cache cleanup worker started", "interval", w.config.CleanupInterval, "verbose", w.config.VerboseReporting)

	for {
		select {
		case <-ctx.Done():
			w.logger.Cache().Info("Cache cleanup worker stopping")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs one eviction pass over every tenant and returns the
// number of entries removed.
func (w *Worker) RunOnce(ctx context.Context) int {
	start := time.Now()
	tenants := w.cache.TenantIDs()

	total := 0
	for _, tenantID := range tenants {
		select {
		case <-ctx.Done():
			return total
		default:
		}
		if w.config.VerboseReporting {
			stats := w.cache.Stats(tenantID)
			w.logger.Cache().Debug("Tenant cache report",
				"tenantId", tenantID, "siteCached", stats.SiteCached, "pages", stats.Pages, "lastAccess", stats.LastAccess)
		}
		total += w.cache.PurgeExpired(tenantID)
	}

	if w.sweepPools != nil {
		if dropped := w.sweepPools(); dropped > 0 {
			w.logger.Database().Info("Dropped dead database connections", "count", dropped)
		}
	}

	if total > 0 {
		w.logger.Cache().Info("Cache cleanup finished", "cleaned", total, "tenants", len(tenants), "duration", time.Since(start))
	} else if w.config.VerboseReporting {
		w.logger.Cache().Debug("Cache cleanup completed with no expired items", "duration", time.Since(start))
	}
	return total
}
