package website

import (
	"strings"
	"time"
)

// Organization holds the business identity a site is built for.
type Organization struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Slug           string            `json:"slug"`
	LogoURL        string            `json:"logoUrl,omitempty"`
	PrimaryColor   string            `json:"primaryColor"`
	SecondaryColor string            `json:"secondaryColor"`
	Tagline        string            `json:"tagline,omitempty"`
	Industry       string            `json:"industry,omitempty"`
	Email          string            `json:"email,omitempty"`
	Phone          string            `json:"phone,omitempty"`
	Address        string            `json:"address,omitempty"`
	City           string            `json:"city,omitempty"`
	PostalCode     string            `json:"postalCode,omitempty"`
	Website        string            `json:"website,omitempty"`
	Social         map[string]string `json:"social,omitempty"`

	PointsName      string  `json:"pointsName,omitempty"`
	PointsPerEuro   float64 `json:"pointsPerEuro,omitempty"`
	RewardThreshold int     `json:"rewardThreshold,omitempty"`
	WelcomeBonus    int     `json:"welcomeBonus,omitempty"`
}

// WithDefaults fills brand colors and cleans the tagline.
func (o Organization) WithDefaults() Organization {
	if o.PrimaryColor == "" {
		o.PrimaryColor = "#ef4444"
	}
	if o.SecondaryColor == "" {
		o.SecondaryColor = "#dc2626"
	}
	o.Tagline = strings.Trim(strings.TrimSpace(o.Tagline), `"'`)
	return o
}

// FullAddress joins the non-empty address parts.
func (o Organization) FullAddress() string {
	var parts []string
	for _, p := range []string{o.Address, o.City, o.PostalCode} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Site is what the record store loads and saves for one organization.
type Site struct {
	Organization Organization `json:"organization"`
	Record       Record       `json:"record"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Config decodes the record.
func (s *Site) Config() Config {
	return DecodeConfig(s.Record)
}

// ContactSubmission is a message left through the public contact form.
type ContactSubmission struct {
	ID        string    `json:"id"`
	SiteID    string    `json:"siteId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
