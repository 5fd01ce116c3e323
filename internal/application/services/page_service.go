package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	domainservices "github.com/AtRiskMedia/sitecraft-go/internal/domain/services"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/rendering"
)

// ErrSiteDisabled is returned for public requests to an unpublished site.
var ErrSiteDisabled = errors.New("site is not published")

const defaultTaglineFallback = "Programma Fedeltà"

// SectionView is one body section with its resolved treatment.
type SectionView struct {
	website.SectionDescriptor
	Treatment   website.VisualSlice `json:"treatment"`
	ContentHTML template.HTML       `json:"contentHtml,omitempty"`
}

// StatView pairs an about-section stat with its counter target.
type StatView struct {
	website.Stat
	Target domainservices.CounterTarget `json:"target"`
}

// ServiceView is a service with its icon resolved against the registry.
type ServiceView struct {
	website.Service
	Glyph website.Icon `json:"glyph"`
}

type PageMeta struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Keywords     string `json:"keywords,omitempty"`
	OGImage      string `json:"ogImage,omitempty"`
	Favicon      string `json:"favicon,omitempty"`
	CanonicalURL string `json:"canonicalUrl,omitempty"`
}

// AnalyticsIDs only carries ids the visitor consented to.
type AnalyticsIDs struct {
	GoogleAnalyticsID string `json:"googleAnalyticsId,omitempty"`
	TagManagerID      string `json:"tagManagerId,omitempty"`
	FacebookPixelID   string `json:"facebookPixelId,omitempty"`
}

type ConsentView struct {
	State            website.BannerState    `json:"state"`
	Record           website.ConsentRecord  `json:"record"`
	ShowBanner       bool                   `json:"showBanner"`
	Position         website.BannerPosition `json:"position"`
	ShowPreferences  bool                   `json:"showPreferences"`
	PrivacyPolicyURL string                 `json:"privacyPolicyUrl,omitempty"`
	CookiePolicyURL  string                 `json:"cookiePolicyUrl,omitempty"`
}

type FooterView struct {
	Text          string            `json:"text,omitempty"`
	ShowPoweredBy bool              `json:"showPoweredBy"`
	Year          int               `json:"year"`
	Address       string            `json:"address,omitempty"`
	Social        map[string]string `json:"social,omitempty"`
}

// PageModel is everything the public page renderer needs.
type PageModel struct {
	TenantID       string                   `json:"tenantId"`
	Organization   website.Organization     `json:"organization"`
	Config         website.Config           `json:"config"`
	Navigation     []website.NavigationItem `json:"navigation"`
	Sections       []SectionView            `json:"sections"`
	Services       []ServiceView            `json:"services,omitempty"`
	Stats          []StatView               `json:"stats"`
	Meta           PageMeta                 `json:"meta"`
	StructuredData string                   `json:"structuredData"`
	Analytics      AnalyticsIDs             `json:"analytics"`
	Consent        ConsentView              `json:"consent"`
	Theme          website.Theme            `json:"theme"`
	CustomCSS      template.CSS             `json:"customCss,omitempty"`
	Maintenance    *website.Maintenance     `json:"maintenance,omitempty"`
	Footer         FooterView               `json:"footer"`
}

// BuildOptions carries the visitor-side inputs of a page build.
type BuildOptions struct {
	Consent     website.ConsentRecord
	BannerState website.BannerState
	// Preview renders unpublished sites for the operator.
	Preview bool
}

// PageService is the composition root of the public page.
type PageService struct {
	config      *ConfigService
	composer    *domainservices.SectionComposer
	resolver    *domainservices.TreatmentResolver
	markdown    *rendering.Markdown
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
	now         func() time.Time
}

func NewPageService(config *ConfigService, markdown *rendering.Markdown, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *PageService {
	return &PageService{
		config:      config,
		composer:    domainservices.NewSectionComposer(),
		resolver:    domainservices.NewTreatmentResolver(),
		markdown:    markdown,
		logger:      logger,
		perfTracker: perfTracker,
		now:         time.Now,
	}
}

// Build loads the tenant's site and assembles its page.
func (s *PageService) Build(t TenantScope, opts BuildOptions) (*PageModel, error) {
	marker := s.perfTracker.StartOperation("site_page_build", t.ID())
	defer marker.Complete()

	site, err := s.config.Get(t)
	if err != nil {
		marker.SetError(err)
		return nil, err
	}

	page := s.Assemble(t.ID(), t.PublicURL(), site, opts)
	if !page.Config.Enabled && !opts.Preview {
		marker.SetError(ErrSiteDisabled)
		return nil, ErrSiteDisabled
	}

	s.logger.Site().Debug("Page assembled", "tenantId", t.ID(), "sections", len(page.Sections),
		"navigation", len(page.Navigation), "skippedCustomSections", page.Config.SkippedCustomSections)
	marker.SetSuccess(true)
	return page, nil
}

// Assemble is the pure part of Build.
func (s *PageService) Assemble(tenantID, siteURL string, site *website.Site, opts BuildOptions) *PageModel {
	cfg := site.Config()
	org := site.Organization.WithDefaults()
	composition := s.composer.Compose(cfg)

	page := &PageModel{
		TenantID:     tenantID,
		Organization: org,
		Config:       cfg,
		Navigation:   composition.Navigation,
		Sections:     make([]SectionView, 0, len(composition.Sections)),
		Theme:        cfg.Theme,
		CustomCSS:    rendering.SanitizeCSS(cfg.CustomCSS),
		Footer: FooterView{
			Text:          cfg.FooterText,
			ShowPoweredBy: cfg.ShowPoweredBy,
			Year:          s.now().Year(),
			Address:       org.FullAddress(),
			Social:        org.Social,
		},
	}

	for _, d := range composition.Sections {
		view := SectionView{SectionDescriptor: d}
		if d.Custom != nil {
			view.Treatment = s.resolver.ResolveCustom(*d.Custom)
			if s.markdown != nil {
				view.ContentHTML = s.markdown.RenderOrEscape(d.Custom.Content)
			}
		} else {
			view.Treatment = s.resolver.ResolveSection(cfg, d.Key)
		}
		page.Sections = append(page.Sections, view)
	}

	for _, svc := range cfg.Services {
		glyph, _ := website.LookupIcon(svc.Icon)
		page.Services = append(page.Services, ServiceView{Service: svc, Glyph: glyph})
	}
	for _, st := range cfg.AboutStats {
		page.Stats = append(page.Stats, StatView{Stat: st, Target: domainservices.ParseTarget(st.Value)})
	}

	page.Meta = buildMeta(org, cfg, siteURL)
	page.StructuredData = buildStructuredData(org, cfg, page.Meta)
	page.Analytics = gateAnalytics(cfg.SEO, opts.Consent)
	// tracking ids leave the page model only through Analytics
	page.Config.SEO.GoogleAnalyticsID = ""
	page.Config.SEO.TagManagerID = ""
	page.Config.SEO.FacebookPixelID = ""
	page.Consent = buildConsentView(cfg.GDPR, opts)

	if cfg.Maintenance.Enabled {
		m := cfg.Maintenance
		page.Maintenance = &m
	}
	return page
}

func buildMeta(org website.Organization, cfg website.Config, siteURL string) PageMeta {
	meta := PageMeta{
		Title:        cfg.SEO.MetaTitle,
		Description:  cfg.SEO.MetaDescription,
		Keywords:     cfg.SEO.MetaKeywords,
		OGImage:      firstNonEmpty(cfg.SEO.OGImage, org.LogoURL, cfg.HeroImage),
		Favicon:      firstNonEmpty(cfg.SEO.FaviconURL, org.LogoURL),
		CanonicalURL: siteURL,
	}
	if meta.Title == "" {
		meta.Title = fmt.Sprintf("%s - %s", org.Name, firstNonEmpty(org.Tagline, defaultTaglineFallback))
	}
	if meta.Description == "" {
		meta.Description = firstNonEmpty(cfg.Description, fmt.Sprintf(
			"Scopri %s e il nostro esclusivo programma fedeltà. Accumula punti ad ogni acquisto e ricevi premi straordinari!", org.Name))
	}
	return meta
}

var dayAbbreviations = map[string]string{
	"monday":    "Mo",
	"tuesday":   "Tu",
	"wednesday": "We",
	"thursday":  "Th",
	"friday":    "Fr",
	"saturday":  "Sa",
	"sunday":    "Su",
}

// OpeningHoursSpec formats open days as schema.org openingHours entries,
// Monday first. Closed and unrecognised days are omitted.
func OpeningHoursSpec(cfg website.Config) []string {
	var out []string
	for _, day := range cfg.OpenDays() {
		hours := cfg.OpeningHours[day]
		abbr, ok := dayAbbreviations[strings.ToLower(day)]
		if !ok || hours.Closed || hours.Open == "" || hours.Close == "" {
			continue
		}
		out = append(out, fmt.Sprintf("%s %s-%s", abbr, hours.Open, hours.Close))
	}
	return out
}

func buildStructuredData(org website.Organization, cfg website.Config, meta PageMeta) string {
	data := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "LocalBusiness",
		"name":        org.Name,
		"description": meta.Description,
	}
	if meta.CanonicalURL != "" {
		data["url"] = meta.CanonicalURL
	}
	if org.LogoURL != "" {
		data["logo"] = org.LogoURL
	}
	if meta.OGImage != "" {
		data["image"] = meta.OGImage
	}
	if org.Phone != "" {
		data["telephone"] = org.Phone
	}
	if org.Email != "" {
		data["email"] = org.Email
	}
	if org.FullAddress() != "" {
		data["address"] = map[string]any{
			"@type":           "PostalAddress",
			"streetAddress":   org.Address,
			"addressLocality": org.City,
			"postalCode":      org.PostalCode,
		}
	}
	if hours := OpeningHoursSpec(cfg); len(hours) > 0 {
		data["openingHours"] = hours
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

func gateAnalytics(seo website.SEO, consent website.ConsentRecord) AnalyticsIDs {
	var ids AnalyticsIDs
	if consent.Allows(website.ConsentAnalytics) {
		ids.GoogleAnalyticsID = seo.GoogleAnalyticsID
		ids.TagManagerID = seo.TagManagerID
	}
	if consent.Allows(website.ConsentMarketing) {
		ids.FacebookPixelID = seo.FacebookPixelID
	}
	return ids
}

func buildConsentView(gdpr website.GDPRSettings, opts BuildOptions) ConsentView {
	record := opts.Consent
	record.Necessary = true
	state := opts.BannerState
	if state == "" {
		state = website.BannerUnknown
	}
	return ConsentView{
		State:            state,
		Record:           record,
		ShowBanner:       gdpr.ShowBanner && state == website.BannerShown,
		Position:         gdpr.Position,
		ShowPreferences:  gdpr.ShowPreferences,
		PrivacyPolicyURL: gdpr.PrivacyPolicyURL,
		CookiePolicyURL:  gdpr.CookiePolicyURL,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
