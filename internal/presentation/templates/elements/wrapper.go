// Package elements holds the html/template sources of the public page, one
// named template per page element. The renderer parses them into one set.
package elements

// SectionWrapper paints a section's treatment. Image backgrounds get their
// own layer so parallax can translate it; the overlay sits between the
// background and the content.
const SectionWrapper = `
{{define "sectionOpen"}}<section id="{{.TargetID}}" class="section section-{{.Key}}" style="{{bgStyle .Treatment}}" data-order="{{.Order}}">
{{- with layerStyle .Treatment}}<div class="section-bg" style="{{.}}" data-parallax aria-hidden="true"></div>{{end}}
{{- with overlayStyle .Treatment}}<div class="section-overlay" style="{{.}}" aria-hidden="true"></div>{{end}}
<div class="section-inner" style="{{textStyle .Treatment}}">{{end}}

{{define "sectionClose"}}</div></section>{{end}}

{{define "section"}}{{template "sectionOpen" .Section}}
{{- if eq .Section.Key "hero"}}{{template "hero" .}}
{{- else if eq .Section.Key "about"}}{{template "about" .}}
{{- else if eq .Section.Key "services"}}{{template "services" .}}
{{- else if eq .Section.Key "gallery"}}{{template "gallery" .}}
{{- else if eq .Section.Key "loyalty"}}{{template "loyalty" .}}
{{- else if eq .Section.Key "testimonials"}}{{template "testimonials" .}}
{{- else if eq .Section.Key "pricing"}}{{template "pricing" .}}
{{- else if eq .Section.Key "team"}}{{template "team" .}}
{{- else if eq .Section.Key "video"}}{{template "video" .}}
{{- else if eq .Section.Key "contact"}}{{template "contact" .}}
{{- else if eq .Section.Key "custom"}}{{template "custom" .}}
{{- end}}
{{template "sectionClose"}}{{end}}
`
