package website

import "strings"

// Icon is a supported service glyph.
type Icon string

// FallbackIcon is rendered for unknown or empty icon names.
const FallbackIcon Icon = "sparkles"

var iconRegistry = map[string]Icon{
	"sparkles":     "sparkles",
	"scissors":     "scissors",
	"heart":        "heart",
	"star":         "star",
	"gift":         "gift",
	"coffee":       "coffee",
	"utensils":     "utensils",
	"shopping-bag": "shopping-bag",
	"briefcase":    "briefcase",
	"calendar":     "calendar",
	"clock":        "clock",
	"phone":        "phone",
	"mail":         "mail",
	"map-pin":      "map-pin",
	"users":        "users",
	"award":        "award",
	"camera":       "camera",
	"music":        "music",
	"dumbbell":     "dumbbell",
	"car":          "car",
	"home":         "home",
	"wrench":       "wrench",
	"shield":       "shield",
	"zap":          "zap",
	"leaf":         "leaf",
	"smile":        "smile",
	"palette":      "palette",
	"truck":        "truck",
}

// LookupIcon resolves a free-text icon name against the closed registry.
// Names are matched case-insensitively and PascalCase names such as
// "ShoppingBag" are accepted. The boolean is false when the fallback was used.
func LookupIcon(name string) (Icon, bool) {
	key := normalizeIconName(name)
	if icon, ok := iconRegistry[key]; ok {
		return icon, true
	}
	return FallbackIcon, false
}

// SupportedIcons lists the registry keys.
func SupportedIcons() []string {
	out := make([]string, 0, len(iconRegistry))
	for k := range iconRegistry {
		out = append(out, k)
	}
	return out
}

func normalizeIconName(name string) string {
	name = strings.TrimSpace(name)
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || r == ' ':
			b.WriteByte('-')
		case r >= 'A' && r <= 'Z':
			if i > 0 && !strings.HasSuffix(b.String(), "-") {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
