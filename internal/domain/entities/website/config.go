package website

import (
	"encoding/json"
	"sort"
	"strings"
)

// SectionStyle is the section-scoped slice of the configuration that feeds
// the treatment resolver.
type SectionStyle struct {
	Kind           BackgroundKind `json:"kind"`
	Color          string         `json:"color"`
	GradientStart  string         `json:"gradientStart"`
	GradientEnd    string         `json:"gradientEnd"`
	ImageURL       string         `json:"imageUrl,omitempty"`
	Parallax       bool           `json:"parallax"`
	Overlay        bool           `json:"overlay"`
	OverlayColor   string         `json:"overlayColor"`
	OverlayOpacity float64        `json:"overlayOpacity"`
	TextColor      string         `json:"textColor"`
	Font           string         `json:"font,omitempty"`
}

type Service struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
	Price       string `json:"price,omitempty"`
}

type Testimonial struct {
	Name   string  `json:"name"`
	Text   string  `json:"text"`
	Rating float64 `json:"rating"`
	Image  string  `json:"image,omitempty"`
}

type TeamMember struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Image string `json:"image,omitempty"`
	Bio   string `json:"bio,omitempty"`
}

type PriceItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Duration    string `json:"duration,omitempty"`
	Image       string `json:"image,omitempty"`
}

type PriceCategory struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Items       []PriceItem `json:"items"`
}

// OpeningHours is one day's schedule, keyed by lowercase English day name.
type OpeningHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed,omitempty"`
}

// Stat is one of the about-section counters, e.g. {"500+", "Clienti Felici"}.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type HeroContent struct {
	TitleOverride    string `json:"titleOverride,omitempty"`
	SubtitleOverride string `json:"subtitleOverride,omitempty"`
	Subtitle         string `json:"subtitle,omitempty"`
	EnableParticles  bool   `json:"enableParticles"`
}

type GalleryOptions struct {
	Layout         string `json:"layout"`
	EnableLightbox bool   `json:"enableLightbox"`
	EnableZoom     bool   `json:"enableZoom"`
	EnableCaptions bool   `json:"enableCaptions"`
}

type PricingOptions struct {
	Layout   string `json:"layout"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

type SEO struct {
	MetaTitle         string `json:"metaTitle,omitempty"`
	MetaDescription   string `json:"metaDescription,omitempty"`
	MetaKeywords      string `json:"metaKeywords,omitempty"`
	OGImage           string `json:"ogImage,omitempty"`
	FaviconURL        string `json:"faviconUrl,omitempty"`
	GoogleAnalyticsID string `json:"googleAnalyticsId,omitempty"`
	TagManagerID      string `json:"tagManagerId,omitempty"`
	FacebookPixelID   string `json:"facebookPixelId,omitempty"`
}

type ButtonStyle struct {
	Background      string `json:"background"`
	Text            string `json:"text"`
	BorderRadius    string `json:"borderRadius"`
	BorderWidth     string `json:"borderWidth"`
	BorderColor     string `json:"borderColor"`
	HoverBackground string `json:"hoverBackground"`
	HoverText       string `json:"hoverText"`
	Padding         string `json:"padding"`
	FontWeight      string `json:"fontWeight"`
}

type Theme struct {
	FontHeadings        string      `json:"fontHeadings"`
	FontBody            string      `json:"fontBody"`
	TextPrimary         string      `json:"textPrimary"`
	TextSecondary       string      `json:"textSecondary"`
	BackgroundPrimary   string      `json:"backgroundPrimary"`
	BackgroundSecondary string      `json:"backgroundSecondary"`
	Button              ButtonStyle `json:"button"`
}

// BannerPosition is where the consent banner is anchored.
type BannerPosition string

const (
	BannerBottom BannerPosition = "bottom"
	BannerTop    BannerPosition = "top"
)

type GDPRSettings struct {
	ShowBanner       bool           `json:"showBanner"`
	Position         BannerPosition `json:"position"`
	ShowPreferences  bool           `json:"showPreferences"`
	PrivacyPolicyURL string         `json:"privacyPolicyUrl,omitempty"`
	CookiePolicyURL  string         `json:"cookiePolicyUrl,omitempty"`
}

type ContactFormSettings struct {
	Show           bool   `json:"show"`
	Email          string `json:"email,omitempty"`
	Subject        string `json:"subject"`
	SuccessMessage string `json:"successMessage"`
}

type Maintenance struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message"`
	Until   string `json:"until,omitempty"`
}

// Config is the typed view of a Record, decoded once at the load boundary.
type Config struct {
	Enabled     bool   `json:"enabled"`
	Template    string `json:"template"`
	Description string `json:"description,omitempty"`
	HeroImage   string `json:"heroImage,omitempty"`

	Hero    HeroContent    `json:"hero"`
	Gallery GalleryOptions `json:"gallery"`
	Pricing PricingOptions `json:"pricing"`

	Show   map[SectionKey]bool         `json:"show"`
	Styles map[SectionKey]SectionStyle `json:"styles"`

	GalleryImages   []string                `json:"galleryImages"`
	Services        []Service               `json:"services"`
	Testimonials    []Testimonial           `json:"testimonials"`
	Team            []TeamMember            `json:"team"`
	PriceCategories []PriceCategory         `json:"priceCategories"`
	VideoURL        string                  `json:"videoUrl,omitempty"`
	OpeningHours    map[string]OpeningHours `json:"openingHours"`
	AboutStats      []Stat                  `json:"aboutStats"`
	FeaturedRewards []string                `json:"featuredRewards"`
	ShowMap         bool                    `json:"showMap"`

	// CustomSections keeps only well-formed entries; SkippedCustomSections
	// counts the ones dropped for missing identity.
	CustomSections        []CustomSection `json:"customSections"`
	SkippedCustomSections int             `json:"-"`

	SEO         SEO                 `json:"seo"`
	Theme       Theme               `json:"theme"`
	CustomCSS   string              `json:"customCss,omitempty"`
	GDPR        GDPRSettings        `json:"gdpr"`
	ContactForm ContactFormSettings `json:"contactForm"`
	Maintenance Maintenance         `json:"maintenance"`

	FooterText    string `json:"footerText,omitempty"`
	ShowPoweredBy bool   `json:"showPoweredBy"`
}

// Storage keys that are not section-scoped.
const (
	KeyEnabled         = "website_enabled"
	KeyCustomSections  = "website_custom_sections"
	KeyServices        = "website_services"
	KeyPriceCategories = "website_price_list_categories"
	KeyGallery         = "website_gallery"
	KeyTestimonials    = "website_testimonials"
	KeyTeam            = "website_team"
	KeyVideoURL        = "website_video_url"
	KeyOpeningHours    = "website_opening_hours"
	KeyHeroImage       = "website_hero_image"
)

const (
	DefaultContactSubject        = "Nuovo messaggio dal sito web"
	DefaultContactSuccessMessage = "Grazie per averci contattato! Ti risponderemo il prima possibile."
	DefaultMaintenanceMessage    = "Stiamo lavorando per migliorare la tua esperienza. Torneremo presto online!"
	DefaultPricingTitle          = "I Nostri Servizi"
)

var defaultStats = []Stat{
	{Value: "500+", Label: "Clienti Felici"},
	{Value: "15+", Label: "Anni di Esperienza"},
	{Value: "98%", Label: "Soddisfazione"},
	{Value: "24/7", Label: "Supporto"},
}

// DecodeConfig interprets a raw record, applying a default for every absent key.
func DecodeConfig(r Record) Config {
	cfg := Config{
		Enabled:     r.Bool(KeyEnabled, false),
		Template:    r.String("website_template", "modern"),
		Description: r.OptionalString("website_description"),
		HeroImage:   r.OptionalString(KeyHeroImage),
		Hero: HeroContent{
			TitleOverride:    r.OptionalString("website_hero_title_override"),
			SubtitleOverride: r.OptionalString("website_hero_subtitle_override"),
			Subtitle:         r.String("website_hero_subtitle", r.OptionalString("website_hero_subtitle_override")),
			EnableParticles:  r.Bool("website_hero_enable_particles", false),
		},
		Gallery: GalleryOptions{
			Layout:         r.String("website_gallery_layout", "masonry"),
			EnableLightbox: r.Bool("website_gallery_enable_lightbox", true),
			EnableZoom:     r.Bool("website_gallery_enable_zoom", true),
			EnableCaptions: r.Bool("website_gallery_enable_captions", true),
		},
		Pricing: PricingOptions{
			Layout:   r.String("website_pricing_layout", "vertical"),
			Title:    r.String("website_pricing_title", DefaultPricingTitle),
			Subtitle: r.OptionalString("website_pricing_subtitle"),
		},
		Show:     make(map[SectionKey]bool, len(BuiltinSections)+1),
		Styles:   make(map[SectionKey]SectionStyle, len(StyledSections)),
		VideoURL: r.OptionalString(KeyVideoURL),
		ShowMap:  r.Bool("website_show_map", true),
		SEO: SEO{
			MetaTitle:         r.OptionalString("website_meta_title"),
			MetaDescription:   r.OptionalString("website_meta_description"),
			MetaKeywords:      r.OptionalString("website_meta_keywords"),
			OGImage:           r.OptionalString("website_og_image"),
			FaviconURL:        r.OptionalString("website_favicon_url"),
			GoogleAnalyticsID: r.OptionalString("website_google_analytics_id"),
			TagManagerID:      r.OptionalString("website_google_tag_manager_id"),
			FacebookPixelID:   r.OptionalString("website_facebook_pixel_id"),
		},
		Theme: Theme{
			FontHeadings:        r.String("website_font_headings", "Inter"),
			FontBody:            r.String("website_font_body", "Inter"),
			TextPrimary:         r.String("website_color_text_primary", "#1f2937"),
			TextSecondary:       r.String("website_color_text_secondary", "#6b7280"),
			BackgroundPrimary:   r.String("website_color_background_primary", "#ffffff"),
			BackgroundSecondary: r.String("website_color_background_secondary", "#f9fafb"),
			Button: ButtonStyle{
				Background:      r.String("website_button_bg_color", "#ef4444"),
				Text:            r.String("website_button_text_color", "#ffffff"),
				BorderRadius:    r.String("website_button_border_radius", "8px"),
				BorderWidth:     r.String("website_button_border_width", "0px"),
				BorderColor:     r.String("website_button_border_color", "#ef4444"),
				HoverBackground: r.String("website_button_hover_bg_color", "#dc2626"),
				HoverText:       r.String("website_button_hover_text_color", "#ffffff"),
				Padding:         r.String("website_button_padding", "12px 24px"),
				FontWeight:      r.String("website_button_font_weight", "600"),
			},
		},
		CustomCSS: r.OptionalString("website_custom_css"),
		GDPR: GDPRSettings{
			ShowBanner:       r.Bool("website_show_gdpr_banner", true),
			Position:         decodeBannerPosition(r.OptionalString("website_gdpr_banner_position")),
			ShowPreferences:  r.Bool("website_gdpr_show_preferences", true),
			PrivacyPolicyURL: r.OptionalString("website_privacy_policy_url"),
			CookiePolicyURL:  r.OptionalString("website_cookie_policy_url"),
		},
		ContactForm: ContactFormSettings{
			Show:           r.Bool("website_show_contact_form", true),
			Email:          r.OptionalString("website_contact_form_email"),
			Subject:        r.String("website_contact_form_subject", DefaultContactSubject),
			SuccessMessage: r.String("website_contact_form_success_message", DefaultContactSuccessMessage),
		},
		Maintenance: Maintenance{
			Enabled: r.Bool("website_maintenance_mode", false),
			Message: r.String("website_maintenance_message", DefaultMaintenanceMessage),
			Until:   r.OptionalString("website_maintenance_until"),
		},
		FooterText:    r.OptionalString("website_footer_text"),
		ShowPoweredBy: r.Bool("website_show_powered_by", true),
	}

	cfg.Show[SectionHero] = r.Bool(ShowKey(SectionHero), true)
	for _, b := range BuiltinSections {
		cfg.Show[b.Key] = r.Bool(ShowKey(b.Key), b.DefaultShow)
	}
	for _, key := range StyledSections {
		cfg.Styles[key] = decodeStyle(r, key)
	}

	cfg.GalleryImages = decodeStrings(r, KeyGallery)
	cfg.FeaturedRewards = decodeStrings(r, "website_featured_rewards")
	if !r.Decode(KeyServices, &cfg.Services) {
		cfg.Services = nil
	}
	if !r.Decode(KeyTestimonials, &cfg.Testimonials) {
		cfg.Testimonials = nil
	}
	if !r.Decode(KeyTeam, &cfg.Team) {
		cfg.Team = nil
	}
	if !r.Decode(KeyPriceCategories, &cfg.PriceCategories) {
		cfg.PriceCategories = nil
	}
	if !r.Decode(KeyOpeningHours, &cfg.OpeningHours) {
		cfg.OpeningHours = map[string]OpeningHours{}
	}

	for i, def := range defaultStats {
		n := string(rune('1' + i))
		cfg.AboutStats = append(cfg.AboutStats, Stat{
			Value: r.String("website_about_stat"+n+"_value", def.Value),
			Label: r.String("website_about_stat"+n+"_label", def.Label),
		})
	}

	cfg.CustomSections, cfg.SkippedCustomSections = DecodeCustomSections(r.List(KeyCustomSections))
	return cfg
}

func decodeStyle(r Record, key SectionKey) SectionStyle {
	def := DefaultsFor(key)
	imageKey := StyleKey(key, "bg_image")
	if key == SectionHero {
		imageKey = KeyHeroImage
	}

	style := SectionStyle{
		Kind:           BackgroundKind(r.String(StyleKey(key, "bg_type"), string(def.Kind))),
		Color:          r.String(StyleKey(key, "bg_color"), def.Color),
		GradientStart:  r.String(StyleKey(key, "bg_gradient_start"), def.GradientStart),
		GradientEnd:    r.String(StyleKey(key, "bg_gradient_end"), def.GradientEnd),
		ImageURL:       r.OptionalString(imageKey),
		Parallax:       r.Bool(StyleKey(key, "enable_parallax"), def.Parallax),
		Overlay:        r.Bool(StyleKey(key, "enable_overlay"), def.Overlay),
		OverlayColor:   r.String(StyleKey(key, "overlay_color"), def.OverlayColor),
		OverlayOpacity: clampUnit(r.Float(StyleKey(key, "overlay_opacity"), def.OverlayOpacity)),
		TextColor:      r.String(StyleKey(key, "text_color"), def.TextColor),
		Font:           r.OptionalString(StyleKey(key, "font")),
	}
	return style
}

func decodeBannerPosition(v string) BannerPosition {
	if BannerPosition(strings.ToLower(v)) == BannerTop {
		return BannerTop
	}
	return BannerBottom
}

func decodeStrings(r Record, key string) []string {
	var out []string
	for _, v := range r.List(key) {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// OpenDays returns the configured days in Monday-first order.
func (c Config) OpenDays() []string {
	days := make([]string, 0, len(c.OpeningHours))
	for day := range c.OpeningHours {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return weekdayIndex(days[i]) < weekdayIndex(days[j]) })
	return days
}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func weekdayIndex(day string) int {
	for i, d := range weekdays {
		if d == strings.ToLower(day) {
			return i
		}
	}
	return len(weekdays)
}

// EncodeCustomSections converts sections to the JSON shape stored under
// website_custom_sections.
func EncodeCustomSections(sections []CustomSection) []any {
	out := make([]any, 0, len(sections))
	for _, s := range sections {
		raw, err := json.Marshal(s)
		if err != nil {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			continue
		}
		out = append(out, m)
	}
	return out
}
