package email

import (
	"errors"
	"testing"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/resendlabs/resend-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (r *recordingSender) Send(params *resend.SendEmailRequest) (resend.SendEmailResponse, error) {
	r.sent = append(r.sent, params)
	return resend.SendEmailResponse{Id: "email-1"}, r.err
}

func testMessage() Message {
	return Message{
		Organization: website.Organization{ID: "org-1", Name: "Salone Rosa", Email: "info@salonerosa.it", PrimaryColor: "#db2777"},
		Form:         website.ContactFormSettings{Show: true},
		SiteURL:      "https://salonerosa.it",
		Submission:   website.ContactSubmission{Name: "Anna", Email: "anna@example.com", Message: "Vorrei un appuntamento"},
	}
}

func TestNewResendClientRequiresKey(t *testing.T) {
	_, err := NewResendClient(" ", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSendContactNotification(t *testing.T) {
	rec := &recordingSender{}
	c := &ResendClient{emails: rec, fromEmail: "noreply@example.com"}

	require.NoError(t, c.SendContactNotification(testMessage()))
	require.Len(t, rec.sent, 1)
	sent := rec.sent[0]
	assert.Equal(t, []string{"info@salonerosa.it"}, sent.To)
	assert.Equal(t, "Salone Rosa <noreply@example.com>", sent.From)
	assert.Equal(t, website.DefaultContactSubject, sent.Subject)
	assert.Equal(t, "anna@example.com", sent.ReplyTo)
	assert.Contains(t, sent.Html, "Vorrei un appuntamento")
	assert.Contains(t, sent.Html, "#db2777")
}

func TestSendContactNotificationPrefersFormAddress(t *testing.T) {
	rec := &recordingSender{}
	c := &ResendClient{emails: rec, fromEmail: "noreply@example.com"}
	msg := testMessage()
	msg.Form.Email = "booking@salonerosa.it"
	msg.Form.Subject = "Prenotazione"

	require.NoError(t, c.SendContactNotification(msg))
	assert.Equal(t, []string{"booking@salonerosa.it"}, rec.sent[0].To)
	assert.Equal(t, "Prenotazione", rec.sent[0].Subject)
}

func TestSendContactNotificationWithoutRecipient(t *testing.T) {
	rec := &recordingSender{}
	c := &ResendClient{emails: rec, fromEmail: "noreply@example.com"}
	msg := testMessage()
	msg.Organization.Email = ""

	assert.Error(t, c.SendContactNotification(msg))
	assert.Empty(t, rec.sent)
}

func TestSendContactConfirmation(t *testing.T) {
	rec := &recordingSender{}
	c := &ResendClient{emails: rec, fromEmail: "noreply@example.com"}

	require.NoError(t, c.SendContactConfirmation(testMessage()))
	sent := rec.sent[0]
	assert.Equal(t, []string{"anna@example.com"}, sent.To)
	assert.Contains(t, sent.Html, website.DefaultContactSuccessMessage)
	assert.Contains(t, sent.Html, "https://salonerosa.it")
}

func TestSendWrapsProviderError(t *testing.T) {
	boom := errors.New("rate limited")
	c := &ResendClient{emails: &recordingSender{err: boom}, fromEmail: "noreply@example.com"}

	err := c.SendContactConfirmation(testMessage())
	assert.ErrorIs(t, err, boom)
}
