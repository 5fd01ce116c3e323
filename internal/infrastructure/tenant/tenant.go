// Package tenant manages tenant-specific configurations and context,
// isolating multi-tenancy logic from the rest of the application.
package tenant

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/database"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"golang.org/x/sync/errgroup"
)

// activationConcurrency bounds parallel tenant warm-up at startup.
const activationConcurrency = 4

// Manager coordinates tenant detection and context creation
type Manager struct {
	baseDir        string
	detector       *Detector
	cacheManager   *manager.Manager
	tableCreator   *database.TableCreator
	contexts       map[string]*Context
	contextMutexes sync.Map
	globalMutex    sync.RWMutex
	logger         *logging.ChanneledLogger
}

func NewManager(baseDir string, multiTenant bool, cacheManager *manager.Manager, logger *logging.ChanneledLogger) (*Manager, error) {
	detector, err := NewDetector(baseDir, multiTenant, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tenant detector: %w", err)
	}

	return &Manager{
		baseDir:      baseDir,
		detector:     detector,
		cacheManager: cacheManager,
		tableCreator: database.NewTableCreator(),
		contexts:     make(map[string]*Context),
		logger:       logger,
	}, nil
}

// GetContextByID returns the cached context for tenantID, creating it once
// under a per-tenant lock.
func (m *Manager) GetContextByID(tenantID string) (*Context, error) {
	if ctx, ok := m.cached(tenantID); ok {
		return ctx, nil
	}

	tenantMutexInterface, _ := m.contextMutexes.LoadOrStore(tenantID, &sync.Mutex{})
	tenantMutex := tenantMutexInterface.(*sync.Mutex)

	tenantMutex.Lock()
	defer tenantMutex.Unlock()

	if ctx, ok := m.cached(tenantID); ok {
		return ctx, nil
	}
	return m.createContext(tenantID)
}

func (m *Manager) cached(tenantID string) (*Context, bool) {
	m.globalMutex.RLock()
	defer m.globalMutex.RUnlock()
	ctx, exists := m.contexts[tenantID]
	if exists && ctx.Database != nil && ctx.Database.Conn != nil {
		return ctx, true
	}
	return nil, false
}

func (m *Manager) createContext(tenantID string) (*Context, error) {
	start := time.Now()
	if status := m.detector.GetTenantStatus(tenantID); status == StatusDisabled {
		return nil, fmt.Errorf("tenant %s is disabled", tenantID)
	}

	cfg, err := LoadTenantConfig(m.baseDir, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant config: %w", err)
	}

	db, err := NewDatabase(cfg, m.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}
	if err := m.tableCreator.CreateSchema(db.Conn); err != nil {
		return nil, fmt.Errorf("failed to ensure schema for tenant %s: %w", tenantID, err)
	}

	m.cacheManager.InitializeTenant(tenantID)
	m.detector.UpdateTenantStatus(tenantID, StatusActive, db.DatabaseType())

	ctx := &Context{
		TenantID:     tenantID,
		Config:       cfg,
		Database:     db,
		Status:       StatusActive,
		CacheManager: m.cacheManager,
		Logger:       m.logger,
	}

	m.globalMutex.Lock()
	m.contexts[tenantID] = ctx
	m.globalMutex.Unlock()

	m.logger.Tenant().Info("Tenant context created", "tenantId", tenantID, "database", db.GetConnectionInfo(), "duration", time.Since(start))
	return ctx, nil
}

// PreActivateAllTenants opens every registered tenant concurrently. Failures
// are collected; one broken tenant does not stop the others.
func (m *Manager) PreActivateAllTenants(ctx context.Context) error {
	ids := m.detector.TenantIDs()
	sort.Strings(ids)

	var mu sync.Mutex
	var failed []string

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(activationConcurrency)
	for _, tenantID := range ids {
		if m.detector.GetTenantStatus(tenantID) == StatusDisabled {
			continue
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if _, err := m.GetContextByID(tenantID); err != nil {
				m.logger.Tenant().Error("Tenant pre-activation failed", "tenantId", tenantID, "error", err)
				mu.Lock()
				failed = append(failed, tenantID)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if len(failed) > 0 {
		sort.Strings(failed)
		return fmt.Errorf("pre-activation failed for tenants: %v", failed)
	}
	return nil
}

// Forget drops a cached context so the next request reloads env.json.
func (m *Manager) Forget(tenantID string) {
	m.globalMutex.Lock()
	defer m.globalMutex.Unlock()
	delete(m.contexts, tenantID)
}

// ReloadConfigs drops every cached context. Wired to registry changes.
func (m *Manager) ReloadConfigs() {
	m.globalMutex.Lock()
	defer m.globalMutex.Unlock()
	m.contexts = make(map[string]*Context)
}

func (m *Manager) GetDetector() *Detector {
	return m.detector
}

func (m *Manager) BaseDir() string {
	return m.baseDir
}

// Close cleans up all tenant contexts and closes the pools.
func (m *Manager) Close() error {
	m.globalMutex.Lock()
	defer m.globalMutex.Unlock()

	for _, ctx := range m.contexts {
		ctx.Close()
	}
	m.contexts = make(map[string]*Context)
	ClosePools()
	return nil
}

func (m *Manager) GetLogger() *logging.ChanneledLogger {
	return m.logger
}
