// Package website defines the typed site configuration, the derived render
// plan types and the per-section defaults used to interpret a loosely typed
// configuration record.
package website

// SectionKey names one built-in section of the public page.
type SectionKey string

const (
	SectionHero         SectionKey = "hero"
	SectionAbout        SectionKey = "about"
	SectionServices     SectionKey = "services"
	SectionGallery      SectionKey = "gallery"
	SectionLoyalty      SectionKey = "loyalty"
	SectionTestimonials SectionKey = "testimonials"
	SectionPricing      SectionKey = "pricing"
	SectionTeam         SectionKey = "team"
	SectionVideo        SectionKey = "video"
	SectionContact      SectionKey = "contact"

	// SectionCustom marks descriptors produced from operator-authored sections.
	SectionCustom SectionKey = "custom"
)

// StyledSections lists every built-in section that carries a visual treatment.
var StyledSections = []SectionKey{
	SectionHero, SectionAbout, SectionServices, SectionGallery, SectionLoyalty,
	SectionTestimonials, SectionPricing, SectionTeam, SectionVideo, SectionContact,
}

// Order values for the fixed part of the navigation.
const (
	OrderHome          = 0
	CustomOrderOffset  = 100
	OrderContact       = 999
	contactLabel       = "Contatti"
	homeLabel          = "Home"
	homeTarget         = "hero"
	contactTarget      = "contact"
	customTargetPrefix = "custom-"
)

// BuiltinSection describes a toggleable section with a fixed navigation slot.
type BuiltinSection struct {
	Key         SectionKey
	Label       string
	TargetID    string
	Order       int
	DefaultShow bool
}

// BuiltinSections is the fixed navigation order between Home and Contact.
var BuiltinSections = []BuiltinSection{
	{Key: SectionAbout, Label: "Chi Siamo", TargetID: "about", Order: 1, DefaultShow: true},
	{Key: SectionServices, Label: "Servizi", TargetID: "services", Order: 2, DefaultShow: true},
	{Key: SectionGallery, Label: "Gallery", TargetID: "gallery", Order: 3, DefaultShow: true},
	{Key: SectionLoyalty, Label: "Programma Fedeltà", TargetID: "loyalty", Order: 4, DefaultShow: true},
	{Key: SectionTestimonials, Label: "Recensioni", TargetID: "testimonials", Order: 5, DefaultShow: true},
	{Key: SectionPricing, Label: "Listino", TargetID: "pricing", Order: 6, DefaultShow: false},
	{Key: SectionTeam, Label: "Team", TargetID: "team", Order: 7, DefaultShow: false},
	{Key: SectionVideo, Label: "Video", TargetID: "video", Order: 8, DefaultShow: false},
}

// HomeItem and ContactItem bracket the navigation.
func HomeItem() NavigationItem {
	return NavigationItem{Label: homeLabel, TargetID: homeTarget, Order: OrderHome, Visible: true}
}

func ContactItem() NavigationItem {
	return NavigationItem{Label: contactLabel, TargetID: contactTarget, Order: OrderContact, Visible: true}
}

// CustomTargetID is the anchor id of a custom section.
func CustomTargetID(id string) string {
	return customTargetPrefix + id
}

// BackgroundKind selects how a section background is painted.
type BackgroundKind string

const (
	BackgroundColor    BackgroundKind = "color"
	BackgroundGradient BackgroundKind = "gradient"
	BackgroundImage    BackgroundKind = "image"
)

// Valid reports whether k is one of the three supported kinds.
func (k BackgroundKind) Valid() bool {
	switch k {
	case BackgroundColor, BackgroundGradient, BackgroundImage:
		return true
	}
	return false
}

// SectionDefaults holds the hardcoded fallbacks for one section's treatment.
type SectionDefaults struct {
	Kind           BackgroundKind
	Color          string
	GradientStart  string
	GradientEnd    string
	TextColor      string
	Parallax       bool
	Overlay        bool
	OverlayColor   string
	OverlayOpacity float64
}

const (
	defaultOverlayColor   = "#000000"
	defaultOverlayOpacity = 0.5
)

var sectionDefaults = map[SectionKey]SectionDefaults{
	SectionHero:         {Kind: BackgroundGradient, Color: "#0f172a", GradientStart: "#0f172a", GradientEnd: "#1e293b", TextColor: "#ffffff", Parallax: true, Overlay: true},
	SectionAbout:        {Kind: BackgroundColor, Color: "#ffffff", GradientStart: "#f8fafc", GradientEnd: "#e2e8f0", TextColor: "#1f2937"},
	SectionServices:     {Kind: BackgroundColor, Color: "#f8fafc", GradientStart: "#f8fafc", GradientEnd: "#e2e8f0", TextColor: "#1f2937"},
	SectionGallery:      {Kind: BackgroundColor, Color: "#ffffff", GradientStart: "#f8fafc", GradientEnd: "#e2e8f0", TextColor: "#1f2937"},
	SectionLoyalty:      {Kind: BackgroundColor, Color: "#f8fafc", GradientStart: "#f8fafc", GradientEnd: "#e2e8f0", TextColor: "#1f2937"},
	SectionTestimonials: {Kind: BackgroundColor, Color: "#f8fafc", GradientStart: "#f8fafc", GradientEnd: "#e2e8f0", TextColor: "#1f2937"},
	SectionPricing:      {Kind: BackgroundGradient, Color: "#ffffff", GradientStart: "#ffffff", GradientEnd: "#f8fafc", TextColor: "#1f2937"},
	SectionTeam:         {Kind: BackgroundColor, Color: "#ffffff", GradientStart: "#f8fafc", GradientEnd: "#e2e8f0", TextColor: "#1f2937"},
	SectionVideo:        {Kind: BackgroundColor, Color: "#000000", GradientStart: "#000000", GradientEnd: "#1f2937", TextColor: "#ffffff"},
	SectionContact:      {Kind: BackgroundColor, Color: "#f8fafc", GradientStart: "#f8fafc", GradientEnd: "#e2e8f0", TextColor: "#1f2937"},
}

// DefaultsFor returns the documented defaults for a section. Unknown keys get
// a plain white color treatment.
func DefaultsFor(key SectionKey) SectionDefaults {
	d, ok := sectionDefaults[key]
	if !ok {
		d = SectionDefaults{Kind: BackgroundColor, Color: "#ffffff", GradientStart: "#ffffff", GradientEnd: "#ffffff", TextColor: "#000000"}
	}
	d.OverlayColor = defaultOverlayColor
	d.OverlayOpacity = defaultOverlayOpacity
	return d
}
