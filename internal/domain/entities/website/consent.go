package website

// ConsentStorageKey is the fixed key the consent record is persisted under.
const ConsentStorageKey = "cookie-consent"

// ConsentCategory is one of the four cookie-use classes.
type ConsentCategory string

const (
	ConsentNecessary   ConsentCategory = "necessary"
	ConsentAnalytics   ConsentCategory = "analytics"
	ConsentMarketing   ConsentCategory = "marketing"
	ConsentPreferences ConsentCategory = "preferences"
)

// ConsentRecord is a visitor's cookie choices. Necessary is always true.
type ConsentRecord struct {
	Necessary   bool `json:"necessary"`
	Analytics   bool `json:"analytics"`
	Marketing   bool `json:"marketing"`
	Preferences bool `json:"preferences"`
}

// DefaultConsent is the record used before any choice is made.
func DefaultConsent() ConsentRecord {
	return ConsentRecord{Necessary: true}
}

// AllConsent accepts every category.
func AllConsent() ConsentRecord {
	return ConsentRecord{Necessary: true, Analytics: true, Marketing: true, Preferences: true}
}

// Allows reports whether a category is granted.
func (r ConsentRecord) Allows(c ConsentCategory) bool {
	switch c {
	case ConsentNecessary:
		return true
	case ConsentAnalytics:
		return r.Analytics
	case ConsentMarketing:
		return r.Marketing
	case ConsentPreferences:
		return r.Preferences
	}
	return false
}

// BannerState is the consent banner's state machine position.
type BannerState string

const (
	BannerUnknown BannerState = "unknown"
	BannerShown   BannerState = "shown"
	BannerHidden  BannerState = "hidden"
)
