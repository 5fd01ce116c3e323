package services

import (
	"sort"
	"strings"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
)

// SectionComposer merges the built-in sections with operator-authored custom
// sections into one ordered render plan for the navigation and the body.
type SectionComposer struct{}

func NewSectionComposer() *SectionComposer {
	return &SectionComposer{}
}

// Compose is a pure function of cfg; calling it twice on the same
// configuration yields equal plans.
func (c *SectionComposer) Compose(cfg website.Config) website.Composition {
	nav := make([]website.NavigationItem, 0, len(website.BuiltinSections)+len(cfg.CustomSections)+2)
	body := make([]website.SectionDescriptor, 0, cap(nav))

	nav = append(nav, website.HomeItem())
	if cfg.Show[website.SectionHero] {
		body = append(body, website.SectionDescriptor{
			Key:      website.SectionHero,
			TargetID: website.HomeItem().TargetID,
			Order:    website.OrderHome,
		})
	}

	for _, b := range website.BuiltinSections {
		visible := cfg.Show[b.Key] && hasBackingData(cfg, b.Key)
		nav = append(nav, website.NavigationItem{
			Label:    b.Label,
			TargetID: b.TargetID,
			Order:    b.Order,
			Visible:  visible,
		})
		if visible {
			body = append(body, website.SectionDescriptor{Key: b.Key, TargetID: b.TargetID, Order: b.Order})
		}
	}

	for i := range cfg.CustomSections {
		section := cfg.CustomSections[i]
		if strings.TrimSpace(section.ID) == "" {
			continue
		}
		order := website.CustomOrderOffset + section.Order
		target := website.CustomTargetID(section.ID)
		nav = append(nav, website.NavigationItem{
			Label:    section.NavLabel(),
			TargetID: target,
			Order:    order,
			Visible:  section.Visible,
		})
		if section.Visible {
			body = append(body, website.SectionDescriptor{
				Key:      website.SectionCustom,
				TargetID: target,
				Order:    order,
				Custom:   &section,
			})
		}
	}

	contact := website.ContactItem()
	nav = append(nav, contact)
	body = append(body, website.SectionDescriptor{Key: website.SectionContact, TargetID: contact.TargetID, Order: contact.Order})

	visibleNav := nav[:0]
	for _, item := range nav {
		if item.Visible {
			visibleNav = append(visibleNav, item)
		}
	}

	sort.SliceStable(visibleNav, func(i, j int) bool { return visibleNav[i].Order < visibleNav[j].Order })
	sort.SliceStable(body, func(i, j int) bool { return body[i].Order < body[j].Order })

	return website.Composition{Navigation: visibleNav, Sections: body}
}

// hasBackingData gates the sections whose toggle alone is not enough to
// render. Every other built-in follows its toggle.
func hasBackingData(cfg website.Config, key website.SectionKey) bool {
	switch key {
	case website.SectionServices:
		return len(cfg.Services) > 0
	case website.SectionPricing:
		return len(cfg.PriceCategories) > 0
	}
	return true
}
