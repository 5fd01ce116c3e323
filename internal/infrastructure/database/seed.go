package database

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
)

// seedOrganization mirrors website.Organization with yaml keys.
type seedOrganization struct {
	ID             string            `yaml:"id"`
	Name           string            `yaml:"name"`
	Slug           string            `yaml:"slug"`
	LogoURL        string            `yaml:"logoUrl"`
	PrimaryColor   string            `yaml:"primaryColor"`
	SecondaryColor string            `yaml:"secondaryColor"`
	Tagline        string            `yaml:"tagline"`
	Industry       string            `yaml:"industry"`
	Email          string            `yaml:"email"`
	Phone          string            `yaml:"phone"`
	Address        string            `yaml:"address"`
	City           string            `yaml:"city"`
	PostalCode     string            `yaml:"postalCode"`
	Website        string            `yaml:"website"`
	Social         map[string]string `yaml:"social"`
	PointsName     string            `yaml:"pointsName"`
}

type seedDocument struct {
	Organization seedOrganization `yaml:"organization"`
	Record       map[string]any   `yaml:"record"`
}

// ParseSeed decodes a YAML seed document into a site:
//
//	organization:
//	  name: Salone Rosa
//	  slug: salone-rosa
//	record:
//	  website_enabled: true
//	  website_services:
//	    - title: Taglio
func ParseSeed(data []byte) (*website.Site, error) {
	var doc seedDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}
	if strings.TrimSpace(doc.Organization.Name) == "" {
		return nil, errEmptySeed
	}

	o := doc.Organization
	site := &website.Site{
		Organization: website.Organization{
			ID:             o.ID,
			Name:           o.Name,
			Slug:           o.Slug,
			LogoURL:        o.LogoURL,
			PrimaryColor:   o.PrimaryColor,
			SecondaryColor: o.SecondaryColor,
			Tagline:        o.Tagline,
			Industry:       o.Industry,
			Email:          o.Email,
			Phone:          o.Phone,
			Address:        o.Address,
			City:           o.City,
			PostalCode:     o.PostalCode,
			Website:        o.Website,
			Social:         o.Social,
			PointsName:     o.PointsName,
		}.WithDefaults(),
		Record: website.Record(normalizeYAML(doc.Record).(map[string]any)),
	}
	return site, nil
}

// LoadSeedFile reads and parses a seed file from disk.
func LoadSeedFile(path string) (*website.Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// normalizeYAML converts yaml.v3 output into the shapes encoding/json
// produces, so decoded records behave the same whichever way they arrived.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeValue(val)
		}
		return out
	}
	return map[string]any{}
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalizeYAML(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = normalizeValue(t[i])
		}
		return out
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	}
	return v
}
