package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/sitecraft-go/internal/application/services"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/caching/interfaces"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/monitoring"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/storage"
	"github.com/AtRiskMedia/sitecraft-go/internal/presentation/templates"
)

// ConsentCookieMaxAge is how long a consent decision is remembered.
const ConsentCookieMaxAge = 365 * 24 * time.Hour

// SiteHandlers serves the public page and its model
type SiteHandlers struct {
	pageService    *services.PageService
	consentService *services.ConsentService
	renderer       *templates.PageRenderer
	pages          interfaces.PageCache
	auth           *AuthHandlers
	monitor        *monitoring.TenantMonitor
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

func NewSiteHandlers(pageService *services.PageService, consentService *services.ConsentService, renderer *templates.PageRenderer,
	pages interfaces.PageCache, auth *AuthHandlers, monitor *monitoring.TenantMonitor,
	logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *SiteHandlers {
	return &SiteHandlers{
		pageService:    pageService,
		consentService: consentService,
		renderer:       renderer,
		pages:          pages,
		auth:           auth,
		monitor:        monitor,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// buildOptions reads the visitor's consent cookie. Preview is granted only
// to requests carrying a valid admin token.
func (h *SiteHandlers) buildOptions(c *gin.Context, t services.TenantScope) services.BuildOptions {
	snapshot := h.consentService.Current(storage.NewCookieStorage(c.Writer, c.Request, ConsentCookieMaxAge))
	opts := services.BuildOptions{Consent: snapshot.Record, BannerState: snapshot.State}
	if c.Query("preview") != "" && h.auth != nil {
		opts.Preview = h.auth.isAdmin(c, t)
	}
	return opts
}

// pageVariant keys the rendered HTML cache. Everything in the page that
// depends on the visitor comes from these fields.
func pageVariant(opts services.BuildOptions) string {
	return fmt.Sprintf("%s|a=%t|m=%t|p=%t", opts.BannerState, opts.Consent.Analytics, opts.Consent.Marketing, opts.Consent.Preferences)
}

// GetPage handles GET /sites/:slug - the rendered site
func (h *SiteHandlers) GetPage(c *gin.Context) {
	t, ok := tenantFrom(c)
	if !ok {
		return
	}

	start := time.Now()
	marker := h.perfTracker.StartOperation("get_page_request", t.ID())
	defer marker.Complete()
	h.logger.Site().Debug("Received page request", "method", c.Request.Method, "path", c.Request.URL.Path, "tenantId", t.ID())

	opts := h.buildOptions(c, t)
	variant := pageVariant(opts)
	if !opts.Preview && h.pages != nil {
		html, hit := h.pages.GetPage(t.ID(), variant)
		h.monitor.RecordCacheOperation(t.ID(), hit)
		if hit {
			h.logger.LogCacheOperation("page_get", variant, true, t.ID())
			marker.SetSuccess(true)
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
			return
		}
	}

	page, err := h.pageService.Build(t, opts)
	if err != nil {
		marker.SetError(err)
		if errors.Is(err, services.ErrSiteDisabled) {
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte("<!DOCTYPE html><title>Not found</title><p>Sito non disponibile</p>"))
			return
		}
		h.logger.Site().Error("Page build failed", "tenantId", t.ID(), "error", err)
		c.Data(statusFor(err), "text/html; charset=utf-8", []byte("<!DOCTYPE html><title>Error</title><p>Errore</p>"))
		return
	}
	if opts.Preview {
		page.Maintenance = nil
	}

	html, err := h.renderer.RenderString(page)
	if err != nil {
		marker.SetError(err)
		h.logger.Site().Error("Page render failed", "tenantId", t.ID(), "error", err)
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte("<!DOCTYPE html><title>Error</title><p>Errore</p>"))
		return
	}

	status := http.StatusOK
	switch {
	case page.Maintenance != nil:
		status = http.StatusServiceUnavailable
		c.Header("Retry-After", "3600")
	case !opts.Preview && h.pages != nil:
		h.pages.SetPage(t.ID(), variant, html)
	}

	h.logger.Site().Info("Page request completed", "tenantId", t.ID(), "preview", opts.Preview, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.Data(status, "text/html; charset=utf-8", []byte(html))
}

// GetSite handles GET /api/v1/site - the page model as JSON
func (h *SiteHandlers) GetSite(c *gin.Context) {
	t, ok := tenantFrom(c)
	if !ok {
		return
	}

	marker := h.perfTracker.StartOperation("get_site_request", t.ID())
	defer marker.Complete()

	page, err := h.pageService.Build(t, h.buildOptions(c, t))
	if err != nil {
		marker.SetError(err)
		respondError(c, h.logger.Site(), t.ID(), err)
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, page)
}
