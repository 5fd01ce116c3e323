package templates

import (
	"bytes"
	"html/template"
	"log"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

type ButtonProps struct {
	Text            string
	URL             string
	BackgroundColor string
	TextColor       string
}

// DetailRow is one label/value line of a details table.
type DetailRow struct {
	Label string
	Value string
}

var (
	buttonTemplate = template.Must(template.New("emailButton").Parse(
		`<p style="margin: 0 0 16px;"><a href="{{.URL}}" target="_blank" style="display: inline-block; padding: 12px 24px; border-radius: 8px; font-weight: bold; text-decoration: none; background-color: {{.BackgroundColor}}; color: {{.TextColor}};">{{.Text}}</a></p>`))

	paragraphTemplate = template.Must(template.New("emailParagraph").Parse(
		`<p style="font-size: 16px; margin: 0 0 16px;">{{.}}</p>`))

	detailsTemplate = template.Must(template.New("emailDetails").Parse(
		`<table role="presentation" cellpadding="0" cellspacing="0" style="width: 100%; margin: 0 0 16px; border-collapse: collapse;">{{range .}}<tr><td style="padding: 6px 8px; font-weight: bold; color: #6b7280; vertical-align: top; width: 30%;">{{.Label}}</td><td style="padding: 6px 8px; white-space: pre-wrap;">{{.Value}}</td></tr>{{end}}</table>`))

	// emailPolicy allows the inline formatting visitors may type plus links.
	emailPolicy = func() *bluemonday.Policy {
		p := bluemonday.NewPolicy()
		p.AllowElements("strong", "b", "em", "i", "u", "br")
		p.AllowStandardURLs()
		p.AllowAttrs("href").OnElements("a")
		p.RequireNoFollowOnLinks(true)
		return p
	}()

	hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

func execute(t *template.Template, data any) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		log.Printf("Error executing email template %s: %v", t.Name(), err)
		return ""
	}
	return buf.String()
}

func GetButton(props ButtonProps) string {
	props.BackgroundColor = sanitizeColor(props.BackgroundColor, "#ef4444")
	props.TextColor = sanitizeColor(props.TextColor, "#ffffff")
	return execute(buttonTemplate, props)
}

// GetParagraph escapes text entirely.
func GetParagraph(text string) string {
	return execute(paragraphTemplate, text)
}

// GetParagraphWithHTML keeps basic inline formatting and drops everything else.
func GetParagraphWithHTML(text string) string {
	return execute(paragraphTemplate, template.HTML(SanitizeBasicHTML(text)))
}

func GetDetails(rows []DetailRow) string {
	kept := rows[:0:0]
	for _, r := range rows {
		if strings.TrimSpace(r.Value) != "" {
			kept = append(kept, r)
		}
	}
	return execute(detailsTemplate, kept)
}

// SanitizeBasicHTML strips everything except basic inline tags and links.
func SanitizeBasicHTML(input string) string {
	return emailPolicy.Sanitize(input)
}

func sanitizeColor(color, fallback string) string {
	if hexColor.MatchString(strings.TrimSpace(color)) {
		return strings.TrimSpace(color)
	}
	return fallback
}
