package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/sitecraft-go/internal/application/services"
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/repositories"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/email"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/monitoring"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/rendering"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/security"
	"github.com/AtRiskMedia/sitecraft-go/internal/presentation/http/middleware"
	"github.com/AtRiskMedia/sitecraft-go/internal/presentation/templates"
)

type memSites struct {
	mu    sync.Mutex
	sites map[string]*website.Site
}

func (r *memSites) Load(tenantID string) (*website.Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sites[tenantID]
	if !ok {
		return nil, repositories.ErrSiteNotFound
	}
	cp := *s
	cp.Record = s.Record.Clone()
	return &cp, nil
}

func (r *memSites) Save(tenantID string, site *website.Site) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *site
	cp.Record = site.Record.Clone()
	r.sites[tenantID] = &cp
	return nil
}

type memContacts struct {
	mu     sync.Mutex
	stored []*website.ContactSubmission
}

func (r *memContacts) Store(tenantID string, s *website.ContactSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = security.GenerateULIDAt(s.CreatedAt)
	s.SiteID = tenantID
	r.stored = append(r.stored, s)
	return nil
}

func (r *memContacts) FindRecent(string, int) ([]*website.ContactSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stored, nil
}

type testTenant struct {
	sites    *memSites
	contacts *memContacts
	hash     string
}

func (t *testTenant) ID() string                                            { return "salone" }
func (t *testTenant) SiteRepo() repositories.SiteRepository                 { return t.sites }
func (t *testTenant) ContactRepo() repositories.ContactSubmissionRepository { return t.contacts }
func (t *testTenant) PublicURL() string                                     { return "https://salonerosa.it" }
func (t *testTenant) EmailSettings() (string, string)                       { return "", "" }
func (t *testTenant) AdminCredentials() (string, string)                    { return t.hash, "test-secret" }

// countingPages is a page cache that records hits.
type countingPages struct {
	mu    sync.Mutex
	pages map[string]string
	hits  int
}

func (p *countingPages) GetPage(tenantID, variant string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	html, ok := p.pages[tenantID+"/"+variant]
	if ok {
		p.hits++
	}
	return html, ok
}

func (p *countingPages) SetPage(tenantID, variant, html string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pages[tenantID+"/"+variant] = html
}

func (p *countingPages) InvalidatePages(string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pages = map[string]string{}
}

type testServer struct {
	router  *gin.Engine
	tenant  *testTenant
	pages   *countingPages
	config  *services.ConfigService
	monitor *monitoring.TenantMonitor
}

func newTestServer(t *testing.T, record website.Record) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := security.HashPassword("s3cret-pass")
	require.NoError(t, err)
	tenant := &testTenant{sites: &memSites{sites: map[string]*website.Site{}}, contacts: &memContacts{}, hash: hash}
	if record != nil {
		tenant.sites.sites["salone"] = &website.Site{
			Organization: website.Organization{ID: "salone", Name: "Salone Rosa", Email: "info@salonerosa.it"},
			Record:       record,
		}
	}

	logger := logging.NewNopLogger()
	perf := performance.NewTracker(0, nil)
	noMail := func(string, string) (email.Service, error) { return nil, email.ErrNotConfigured }

	configService := services.NewConfigService(nil, logger, perf)
	pageService := services.NewPageService(configService, rendering.NewMarkdown(), logger, perf)
	contactService := services.NewContactService(configService, noMail, logger, perf)
	consentService := services.NewConsentService(logger)
	authService := services.NewAuthService(time.Hour, logger, perf)
	pages := &countingPages{pages: map[string]string{}}
	monitor := monitoring.NewTenantMonitor(monitoring.DefaultHealthThresholds())

	authHandlers := NewAuthHandlers(authService, logger, perf)
	siteHandlers := NewSiteHandlers(pageService, consentService, templates.NewPageRenderer(), pages, authHandlers, monitor, logger, perf)
	configHandlers := NewConfigHandlers(configService, contactService, logger, perf)
	sectionHandlers := NewSectionHandlers(services.NewCustomSectionService(configService), logger, perf)
	consentHandlers := NewConsentHandlers(consentService, logger)
	contactHandlers := NewContactHandlers(contactService, logger, perf)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.TenantContextKey, services.TenantScope(tenant))
		c.Next()
	})
	r.GET("/sites/:slug", siteHandlers.GetPage)
	r.GET("/api/v1/site", siteHandlers.GetSite)
	r.POST("/api/v1/contact", contactHandlers.PostContact)
	r.GET("/api/v1/consent", consentHandlers.GetConsent)
	r.POST("/api/v1/consent/accept-all", consentHandlers.PostAction(services.ConsentAcceptAll))
	r.POST("/api/v1/consent/preferences", consentHandlers.PostAction(services.ConsentPreferences))
	r.POST("/api/v1/consent/toggle/:category", consentHandlers.PostToggle)
	r.POST("/api/v1/auth/login", authHandlers.PostLogin)
	admin := r.Group("/api/v1/admin", authHandlers.AuthMiddleware())
	admin.GET("/config", configHandlers.GetConfig)
	admin.PATCH("/config", configHandlers.PatchConfig)
	admin.PUT("/enabled", configHandlers.PutEnabled)
	admin.GET("/contacts", configHandlers.GetContacts)
	admin.POST("/sections", sectionHandlers.PostSection)
	admin.PATCH("/sections/:id", sectionHandlers.PatchSection)
	admin.DELETE("/sections/:id", sectionHandlers.DeleteSection)
	admin.POST("/sections/:id/move", sectionHandlers.PostMove)

	return &testServer{router: r, tenant: tenant, pages: pages, config: configService, monitor: monitor}
}

func (s *testServer) do(method, path string, body any, token string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/login", gin.H{"password": "s3cret-pass"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result services.AuthResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotEmpty(t, result.Token)
	return result.Token
}

func TestAdminRequiresToken(t *testing.T) {
	s := newTestServer(t, website.Record{"website_enabled": true})

	w := s.do(http.MethodGet, "/api/v1/admin/config", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/v1/admin/config", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/login", gin.H{"password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/v1/admin/config", nil, s.login(t))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPatchConfigMergesPartialRecord(t *testing.T) {
	s := newTestServer(t, website.Record{"website_enabled": true, "custom_key": "kept"})
	token := s.login(t)

	w := s.do(http.MethodPatch, "/api/v1/admin/config", gin.H{"website_description": "Nuova"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	site, err := s.tenant.sites.Load("salone")
	require.NoError(t, err)
	assert.Equal(t, "Nuova", site.Record["website_description"])
	assert.Equal(t, "kept", site.Record["custom_key"])
	assert.Equal(t, true, site.Record["website_enabled"])

	w = s.do(http.MethodPatch, "/api/v1/admin/config", gin.H{}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSectionEditorLifecycle(t *testing.T) {
	s := newTestServer(t, website.Record{"website_enabled": true})
	token := s.login(t)

	w := s.do(http.MethodPost, "/api/v1/admin/sections", nil, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var first website.CustomSection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, "Nuova Sezione", first.Title)

	w = s.do(http.MethodPost, "/api/v1/admin/sections", nil, token)
	require.Equal(t, http.StatusCreated, w.Code)
	var second website.CustomSection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))

	w = s.do(http.MethodPatch, "/api/v1/admin/sections/"+first.ID, gin.H{"field": "title", "value": "Promo"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/admin/sections/"+second.ID+"/move", gin.H{"direction": "sideways"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/admin/sections/"+second.ID+"/move", gin.H{"direction": "up"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	var moved struct {
		Sections []website.CustomSection `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &moved))
	require.Len(t, moved.Sections, 2)
	assert.Equal(t, second.ID, moved.Sections[0].ID)
	assert.Equal(t, "Promo", moved.Sections[1].Title)
	for i, sec := range moved.Sections {
		assert.Equal(t, i, sec.Order)
	}

	w = s.do(http.MethodDelete, "/api/v1/admin/sections/"+first.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(http.MethodDelete, "/api/v1/admin/sections/"+first.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConsentCookieRoundTrip(t *testing.T) {
	s := newTestServer(t, website.Record{"website_enabled": true})

	w := s.do(http.MethodGet, "/api/v1/consent", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var snap services.ConsentSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, website.BannerShown, snap.State)

	w = s.do(http.MethodPost, "/api/v1/consent/accept-all", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = s.do(http.MethodGet, "/api/v1/consent", nil, "", cookies...)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, website.BannerHidden, snap.State)
	assert.True(t, snap.Record.Analytics)
	assert.True(t, snap.Record.Marketing)

	w = s.do(http.MethodPost, "/api/v1/consent/toggle/bogus", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/consent/preferences", gin.H{"analytics": true}, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.True(t, snap.Record.Necessary)
	assert.True(t, snap.Record.Analytics)
	assert.False(t, snap.Record.Marketing)
}

func TestPostContact(t *testing.T) {
	s := newTestServer(t, website.Record{"website_enabled": true})

	w := s.do(http.MethodPost, "/api/v1/contact", gin.H{"name": "", "email": "bad", "message": ""}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/contact", gin.H{"name": "Anna", "email": "anna@example.com", "message": "Ciao"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), website.DefaultContactSuccessMessage)

	w = s.do(http.MethodGet, "/api/v1/admin/contacts", nil, s.login(t))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anna@example.com")
}

func TestGetPageCachesPerConsentVariant(t *testing.T) {
	s := newTestServer(t, website.Record{"website_enabled": true})

	w := s.do(http.MethodGet, "/sites/salone", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, w.Body.String(), "Salone Rosa")

	w = s.do(http.MethodGet, "/sites/salone", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, s.pages.hits)

	m, ok := s.monitor.GetMetrics("salone")
	require.True(t, ok)
	assert.Equal(t, int64(1), m.CacheHits)
	assert.Equal(t, int64(1), m.CacheMisses)
}

func TestGetPageDisabledAndMaintenance(t *testing.T) {
	s := newTestServer(t, website.Record{"website_enabled": false})
	w := s.do(http.MethodGet, "/sites/salone", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// operators can preview an unpublished site
	w = s.do(http.MethodGet, "/sites/salone?preview=1", nil, s.login(t))
	assert.Equal(t, http.StatusOK, w.Code)

	s = newTestServer(t, website.Record{"website_enabled": true, "website_maintenance_mode": true})
	w = s.do(http.MethodGet, "/sites/salone", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, s.pages.pages)
}

func TestGetSiteJSON(t *testing.T) {
	s := newTestServer(t, website.Record{
		"website_enabled":               true,
		"website_google_analytics_id":   "G-1",
		"website_google_tag_manager_id": "GTM-77",
		"website_facebook_pixel_id":     "PX-42",
	})

	w := s.do(http.MethodGet, "/api/v1/site", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "G-1")
	assert.NotContains(t, w.Body.String(), "GTM-77")
	assert.NotContains(t, w.Body.String(), "PX-42")
	var page services.PageModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, "salone", page.TenantID)
	assert.Empty(t, page.Analytics.GoogleAnalyticsID)
}
