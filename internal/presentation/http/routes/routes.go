// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/sitecraft-go/internal/application/container"
	"github.com/AtRiskMedia/sitecraft-go/internal/application/services"
	"github.com/AtRiskMedia/sitecraft-go/internal/presentation/http/handlers"
	"github.com/AtRiskMedia/sitecraft-go/internal/presentation/http/middleware"
	"github.com/AtRiskMedia/sitecraft-go/internal/presentation/templates"
	"github.com/AtRiskMedia/sitecraft-go/pkg/config"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware(config.CORSAllowedOrigins))

	// Uploaded media is served as static files.
	r.Static(config.UploadsURLPath, config.UploadsDir)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Initialize handlers
	authHandlers := handlers.NewAuthHandlers(container.AuthService, container.Logger, container.PerfTracker)
	siteHandlers := handlers.NewSiteHandlers(container.PageService, container.ConsentService, templates.NewPageRenderer(),
		container.CacheManager, authHandlers, container.Monitor, container.Logger, container.PerfTracker)
	configHandlers := handlers.NewConfigHandlers(container.ConfigService, container.ContactService, container.Logger, container.PerfTracker)
	sectionHandlers := handlers.NewSectionHandlers(container.SectionService, container.Logger, container.PerfTracker)
	consentHandlers := handlers.NewConsentHandlers(container.ConsentService, container.Logger)
	contactHandlers := handlers.NewContactHandlers(container.ContactService, container.Logger, container.PerfTracker)
	uploadHandlers := handlers.NewUploadHandlers(container.UploadService, config.MaxUploadBytes, container.Logger)
	realtimeHandlers := handlers.NewRealtimeHandlers(container.PreviewHub, container.CounterService, container.ConfigService,
		config.CORSAllowedOrigins, config.WebSocketWriteTimeout, container.Logger)
	sysopHandlers := handlers.NewSysOpHandlers(container.TenantManager, container.CacheManager, container.Monitor, config.SysopPassword, container.Logger)

	tenantMiddleware := middleware.TenantMiddleware(container.TenantManager, container.PerfTracker, container.Monitor)

	// Public site pages; the slug names the tenant in multi-tenant mode.
	r.GET("/sites/:slug", tenantMiddleware, siteHandlers.GetPage)

	// SysOp endpoints are not tenant scoped
	sysopAPI := r.Group("/api/sysop")
	sysopAPI.Use(sysopHandlers.SysOpAuthMiddleware())
	{
		sysopAPI.GET("/tenants", sysopHandlers.GetTenants)
		sysopAPI.GET("/cache", sysopHandlers.GetCacheStats)
		sysopAPI.GET("/health", sysopHandlers.GetHealth)
		sysopAPI.GET("/databases", sysopHandlers.GetDatabases)
		sysopAPI.POST("/tenants/:id/reload", sysopHandlers.PostReloadTenant)
		sysopAPI.GET("/logs/levels", sysopHandlers.GetLogLevels)
		sysopAPI.POST("/logs/levels", sysopHandlers.SetLogLevel)
	}

	// API routes with tenant middleware
	api := r.Group("/api/v1")
	api.Use(tenantMiddleware)
	api.Use(middleware.DomainValidationMiddleware(container.TenantManager.GetDetector(), container.Logger))
	{
		api.GET("/site", siteHandlers.GetSite)
		api.POST("/contact", contactHandlers.PostContact)
		api.GET("/counters/ws", realtimeHandlers.GetCounterSocket)

		consent := api.Group("/consent")
		{
			consent.GET("", consentHandlers.GetConsent)
			consent.POST("/accept-all", consentHandlers.PostAction(services.ConsentAcceptAll))
			consent.POST("/reject-all", consentHandlers.PostAction(services.ConsentRejectAll))
			consent.POST("/preferences", consentHandlers.PostAction(services.ConsentPreferences))
			consent.POST("/toggle/:category", consentHandlers.PostToggle)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandlers.PostLogin)
			auth.POST("/logout", authHandlers.PostLogout)
		}

		// Admin endpoints
		admin := api.Group("/admin")
		admin.Use(authHandlers.AuthMiddleware())
		{
			admin.GET("/config", configHandlers.GetConfig)
			admin.PATCH("/config", configHandlers.PatchConfig)
			admin.PUT("/enabled", configHandlers.PutEnabled)
			admin.PUT("/organization", configHandlers.PutOrganization)
			admin.GET("/contacts", configHandlers.GetContacts)

			admin.GET("/sections", sectionHandlers.GetSections)
			admin.POST("/sections", sectionHandlers.PostSection)
			admin.PATCH("/sections/:id", sectionHandlers.PatchSection)
			admin.DELETE("/sections/:id", sectionHandlers.DeleteSection)
			admin.POST("/sections/:id/move", sectionHandlers.PostMove)

			admin.POST("/upload", uploadHandlers.PostUpload)
			admin.GET("/preview/ws", realtimeHandlers.GetPreviewSocket)
		}
	}

	return r
}
