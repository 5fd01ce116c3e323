// Package rendering converts operator-authored text into safe HTML.
package rendering

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Markdown renders custom section bodies. Raw HTML in the source is passed
// through goldmark and then filtered by a UGC policy.
type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
				gmhtml.WithUnsafe(),
			),
		),
		policy: newContentPolicy(),
	}
}

func newContentPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Render converts source to sanitised HTML.
func (m *Markdown) Render(source string) (template.HTML, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(strings.TrimSpace(m.policy.Sanitize(buf.String()))), nil
}

// RenderOrEscape renders source, falling back to escaped plain text.
func (m *Markdown) RenderOrEscape(source string) template.HTML {
	out, err := m.Render(source)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return out
}

var (
	styleBreakout = regexp.MustCompile(`(?i)</?\s*style`)
	cssScript     = regexp.MustCompile(`(?i)(expression\s*\(|javascript:|@import)`)
)

// SanitizeCSS makes operator CSS safe to inline in a <style> element: it
// cannot close the element, import remote sheets or run script.
func SanitizeCSS(css string) template.CSS {
	css = styleBreakout.ReplaceAllString(css, "")
	css = strings.ReplaceAll(css, "<", "")
	css = cssScript.ReplaceAllString(css, "")
	return template.CSS(strings.TrimSpace(css))
}
