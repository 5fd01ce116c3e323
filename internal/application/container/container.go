// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/AtRiskMedia/sitecraft-go/internal/application/services"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/email"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/media"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/monitoring"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/rendering"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/tenant"
	"github.com/AtRiskMedia/sitecraft-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Site Services (stateless singletons)
	ConfigService  *services.ConfigService
	SectionService *services.CustomSectionService
	PageService    *services.PageService
	ContactService *services.ContactService
	ConsentService *services.ConsentService
	AuthService    *services.AuthService
	UploadService  *services.UploadService
	CounterService *services.CounterStreamService

	// Infrastructure Dependencies
	TenantManager *tenant.Manager
	CacheManager  *manager.Manager
	PreviewHub    *messaging.Hub
	Markdown      *rendering.Markdown
	Logger        *logging.ChanneledLogger
	PerfTracker   *performance.Tracker
	Monitor       *monitoring.TenantMonitor
}

// NewContainer creates and wires all singleton services
func NewContainer(tenantManager *tenant.Manager, cacheManager *manager.Manager, logger *logging.ChanneledLogger) *Container {
	perfTracker := performance.NewTracker(config.SlowQueryThreshold, logger.Perf())
	hub := messaging.NewHub(config.PreviewPingInterval, logger.Realtime())
	markdown := rendering.NewMarkdown()
	uploader := media.NewImageProcessor(config.UploadsDir, config.UploadsURLPath, config.MaxUploadBytes, logger.Media())

	configService := services.NewConfigService(hub, logger, perfTracker)

	return &Container{
		ConfigService:  configService,
		SectionService: services.NewCustomSectionService(configService),
		PageService:    services.NewPageService(configService, markdown, logger, perfTracker),
		ContactService: services.NewContactService(configService, NewEmailService, logger, perfTracker),
		ConsentService: services.NewConsentService(logger),
		AuthService:    services.NewAuthService(config.JWTExpiry, logger, perfTracker),
		UploadService:  services.NewUploadService(uploader, configService, logger, perfTracker),
		CounterService: services.NewCounterStreamService(config.CounterDuration, config.CounterTickInterval, logger),

		// Infrastructure
		TenantManager: tenantManager,
		CacheManager:  cacheManager,
		PreviewHub:    hub,
		Markdown:      markdown,
		Logger:        logger,
		PerfTracker:   perfTracker,
		Monitor:       monitoring.NewTenantMonitor(monitoring.DefaultHealthThresholds()),
	}
}

// NewEmailService builds the Resend-backed mailer for one tenant.
func NewEmailService(apiKey, from string) (email.Service, error) {
	client, err := email.NewResendClient(apiKey, from)
	if err != nil {
		return nil, err
	}
	return client, nil
}
