package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParagraphEscapes(t *testing.T) {
	out := GetParagraph(`<script>alert(1)</script>`)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestSanitizeBasicHTML(t *testing.T) {
	out := SanitizeBasicHTML(`<strong>ciao</strong><img src=x onerror=alert(1)><a href="javascript:alert(1)">x</a>`)
	assert.Contains(t, out, "<strong>ciao</strong>")
	assert.NotContains(t, out, "onerror")
	assert.NotContains(t, out, "javascript:")
}

func TestDetailsSkipEmptyRows(t *testing.T) {
	out := GetDetails([]DetailRow{{Label: "Nome", Value: "Anna"}, {Label: "Telefono", Value: " "}})
	assert.Contains(t, out, "Anna")
	assert.NotContains(t, out, "Telefono")
}

func TestLayoutRejectsBadColor(t *testing.T) {
	out := GetEmailLayout(EmailLayoutProps{Content: "<p>x</p>", BrandName: "Salone", BrandColor: "red;background:url(x)"})
	assert.Contains(t, out, "#ef4444")
	assert.NotContains(t, out, "url(x)")
	assert.Contains(t, out, "<p>x</p>")
}

func TestContactContent(t *testing.T) {
	p := ContactEmailProps{SiteName: "Salone Rosa", VisitorName: "Anna", VisitorEmail: "anna@example.com", Message: "Vorrei un appuntamento", SuccessMessage: "Grazie!"}

	notification := GetContactNotificationContent(p)
	assert.Contains(t, notification, "Salone Rosa")
	assert.Contains(t, notification, "mailto:anna@example.com")

	confirmation := GetContactConfirmationContent(p)
	assert.Contains(t, confirmation, "Ciao Anna,")
	assert.Contains(t, confirmation, "Grazie!")
	assert.NotContains(t, confirmation, "Visita il sito")
}
