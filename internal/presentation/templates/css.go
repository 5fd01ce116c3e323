package templates

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
)

// cssValue drops characters that could end a declaration or the style block.
func cssValue(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '"', '\\':
			return -1
		}
		return r
	}, strings.TrimSpace(v))
}

// ThemeCSS emits the typography and button rules of the site theme as CSS
// custom properties plus the .btn classes that consume them.
func ThemeCSS(theme website.Theme, org website.Organization) template.CSS {
	vars := [][2]string{
		{"--font-headings", theme.FontHeadings},
		{"--font-body", theme.FontBody},
		{"--color-primary", org.PrimaryColor},
		{"--color-secondary", org.SecondaryColor},
		{"--color-text-primary", theme.TextPrimary},
		{"--color-text-secondary", theme.TextSecondary},
		{"--color-bg-primary", theme.BackgroundPrimary},
		{"--color-bg-secondary", theme.BackgroundSecondary},
		{"--btn-bg", theme.Button.Background},
		{"--btn-text", theme.Button.Text},
		{"--btn-radius", theme.Button.BorderRadius},
		{"--btn-border-width", theme.Button.BorderWidth},
		{"--btn-border-color", theme.Button.BorderColor},
		{"--btn-hover-bg", theme.Button.HoverBackground},
		{"--btn-hover-text", theme.Button.HoverText},
		{"--btn-padding", theme.Button.Padding},
		{"--btn-weight", theme.Button.FontWeight},
	}

	var b strings.Builder
	b.WriteString(":root{")
	for _, kv := range vars {
		if v := cssValue(kv[1]); v != "" {
			fmt.Fprintf(&b, "%s:%s;", kv[0], v)
		}
	}
	b.WriteString("}")
	b.WriteString("body{font-family:var(--font-body),sans-serif;color:var(--color-text-primary);background:var(--color-bg-primary);margin:0}")
	b.WriteString("h1,h2,h3{font-family:var(--font-headings),sans-serif}")
	b.WriteString(".section{position:relative}.section-inner{position:relative;z-index:1}")
	b.WriteString(".btn{display:inline-block;background:var(--btn-bg);color:var(--btn-text);border-radius:var(--btn-radius);")
	b.WriteString("border:var(--btn-border-width) solid var(--btn-border-color);padding:var(--btn-padding);font-weight:var(--btn-weight);text-decoration:none;cursor:pointer}")
	b.WriteString(".btn:hover{background:var(--btn-hover-bg);color:var(--btn-hover-text)}")
	b.WriteString(".btn-secondary{background:transparent;color:inherit}")
	return template.CSS(b.String())
}
