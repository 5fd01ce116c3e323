package website

// NavigationItem is one entry of the public navigation bar.
type NavigationItem struct {
	Label    string `json:"label"`
	TargetID string `json:"targetId"`
	Order    int    `json:"order"`
	Visible  bool   `json:"visible"`
}

// SectionDescriptor is one block of the page body, in render order.
type SectionDescriptor struct {
	Key      SectionKey     `json:"key"`
	TargetID string         `json:"targetId"`
	Order    int            `json:"order"`
	Custom   *CustomSection `json:"custom,omitempty"`
}

// Composition is the render plan shared by the navigation bar and the body.
type Composition struct {
	Navigation []NavigationItem    `json:"navigation"`
	Sections   []SectionDescriptor `json:"sections"`
}

// HasSection reports whether the body contains the given built-in section.
func (c Composition) HasSection(key SectionKey) bool {
	for _, s := range c.Sections {
		if s.Key == key {
			return true
		}
	}
	return false
}

// TargetIDs lists the navigation anchors in order.
func (c Composition) TargetIDs() []string {
	ids := make([]string, len(c.Navigation))
	for i, n := range c.Navigation {
		ids[i] = n.TargetID
	}
	return ids
}
