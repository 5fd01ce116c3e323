// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/application/container"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/caching/cleanup"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/tenant"
	"github.com/AtRiskMedia/sitecraft-go/internal/presentation/http/server"
	"github.com/AtRiskMedia/sitecraft-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// Bootstrap builds the logger, cache, tenant manager and container. It is
// shared by every CLI command; the caller owns Shutdown of the result.
func Bootstrap(quiet bool) (*container.Container, error) {
	logger := logging.NewNopLogger()
	if !quiet {
		var err error
		loggerConfig := logging.ConfigFromEnv(config.LogLevel, config.LogFormat, config.LogDir, config.LogSource)
		logger, err = logging.NewChanneledLogger(loggerConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logging: %w", err)
		}
	}

	cacheManager := manager.NewManager(config.SiteConfigTTL, logger)

	tenantManager, err := tenant.NewManager(config.TenantsDir, config.MultiTenant, cacheManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tenant manager: %w", err)
	}

	return container.NewContainer(tenantManager, cacheManager, logger), nil
}

// Initialize performs the complete multi-tenant startup sequence and blocks
// until SIGINT or SIGTERM.
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	log.Println("\033[32m" + `
   ___ _ _                    __ _
  / __(_) |_ ___ __ _ _ __ _ / _| |_
  \__ \ |  _/ -_) _| '_/ _' |  _|  _|
  |___/_|\__\___\__|_| \__,_|_|  \__|
` + "\033[0m")

	// Step 1: Initialize logging, cache, tenants and services
	log.Println("Initializing...")
	appContainer, err := Bootstrap(false)
	if err != nil {
		return err
	}
	logger := appContainer.Logger
	tenantManager := appContainer.TenantManager
	logger.Startup().Info("Container initialization complete - switching to channeled logging")

	// Step 2: Make sure the default tenant exists in single-tenant mode
	if !config.MultiTenant {
		stepStart := time.Now()
		if err := EnsureDefaultTenant(tenantManager); err != nil {
			logger.LogStartupPhase("default_tenant", time.Since(stepStart), false)
			return err
		}
		logger.LogStartupPhase("default_tenant", time.Since(stepStart), true)
	}

	// Step 3: Pre-activate registered tenants
	logger.Startup().Info("Starting tenant pre-activation...")
	stepStart := time.Now()
	if err := tenantManager.PreActivateAllTenants(ctx); err != nil {
		// Broken tenants are reported and retried on first request.
		logger.Startup().Error("Tenant pre-activation incomplete", "error", err.Error())
	}
	activeCount := len(appContainer.CacheManager.TenantIDs())
	logger.LogStartupPhase("tenant_activation", time.Since(stepStart), true)
	logger.Startup().Info("Active tenant connections verified", "activeTenants", activeCount)

	// Step 4: Start background workers
	logger.Startup().Info("Starting background workers...")
	cleanupWorker := cleanup.NewWorker(appContainer.CacheManager, cleanup.NewConfig(), logger).
		WithPoolSweep(func() int { return tenant.CleanupStaleConnections(logger) })
	go cleanupWorker.Start(ctx)
	go appContainer.PreviewHub.Run(ctx)
	go func() {
		err := tenantManager.GetDetector().WatchRegistry(ctx, tenantManager.ReloadConfigs)
		if err != nil {
			logger.Tenant().Warn("Tenant registry watcher unavailable", "error", err.Error())
		}
	}()

	// Step 5: Serve until SIGINT or SIGTERM
	httpServer := server.New(config.Port, appContainer)
	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"activeTenants", activeCount,
		"port", config.Port)

	signalCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	runErr := httpServer.Run(signalCtx)
	if runErr != nil {
		logger.System().Error("HTTP server failed", "error", runErr.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped")
	}

	// Background tasks outlive the listener so in-flight requests can finish.
	shutdownStart := time.Now()
	cancelBackgroundTasks()

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))
	Shutdown(appContainer)

	return runErr
}

// Shutdown waits for pending email deliveries and closes tenant databases.
func Shutdown(appContainer *container.Container) {
	logger := appContainer.Logger

	logger.Shutdown().Info("Waiting for pending email deliveries...")
	appContainer.ContactService.Wait()

	logger.Shutdown().Info("Closing tenant manager...")
	if err := appContainer.TenantManager.Close(); err != nil {
		logger.Shutdown().Error("Error closing tenant manager", "error", err.Error())
	} else {
		logger.Shutdown().Info("Tenant manager closed successfully")
	}
	logger.Close()
}

// EnsureDefaultTenant registers the single-tenant default when missing.
func EnsureDefaultTenant(tenantManager *tenant.Manager) error {
	detector := tenantManager.GetDetector()
	for _, id := range detector.TenantIDs() {
		if id == tenant.DefaultTenantID {
			return nil
		}
	}
	if err := tenant.RegisterTenant(tenantManager.BaseDir(), tenant.DefaultTenantID, nil); err != nil {
		return fmt.Errorf("failed to register default tenant: %w", err)
	}
	return detector.RefreshRegistry()
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
