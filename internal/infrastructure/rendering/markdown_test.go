package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownRender(t *testing.T) {
	m := NewMarkdown()

	out, err := m.Render("## Orari\n\nAperti **tutti** i giorni")
	require.NoError(t, err)
	assert.Contains(t, string(out), "<h2")
	assert.Contains(t, string(out), "Orari</h2>")
	assert.Contains(t, string(out), "<strong>tutti</strong>")

	empty, err := m.Render("   ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMarkdownStripsScript(t *testing.T) {
	m := NewMarkdown()
	out := m.RenderOrEscape(`Ciao <script>alert(1)</script><a href="javascript:alert(1)" onclick="x()">link</a>`)
	assert.NotContains(t, string(out), "<script")
	assert.NotContains(t, string(out), "onclick")
	assert.NotContains(t, string(out), "javascript:")
	assert.Contains(t, string(out), "Ciao")
}

func TestSanitizeCSS(t *testing.T) {
	tests := []struct {
		name, in, out string
	}{
		{"plain", ".hero { color: red; }", ".hero { color: red; }"},
		{"breakout", "a{}</style><script>x</script>", "a{}>script>x/script>"},
		{"import", "@import url(evil.css); b{}", "url(evil.css); b{}"},
		{"expression", "p{width:expression(alert(1))}", "p{width:alert(1))}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, string(SanitizeCSS(tt.in)))
		})
	}
}
