package services

import (
	"testing"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/email"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/performance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContactService(mailer email.Service) *ContactService {
	factory := func(apiKey, from string) (email.Service, error) {
		if apiKey == "" {
			return nil, email.ErrNotConfigured
		}
		return mailer, nil
	}
	return NewContactService(newTestConfigService(nil), factory, logging.NewNopLogger(), performance.NewTracker(0, nil))
}

func validContact() ContactRequest {
	return ContactRequest{Name: "  Giulia ", Email: "giulia@example.com", Message: "Vorrei un appuntamento"}
}

func TestContactRequestValidate(t *testing.T) {
	cases := map[string]ContactRequest{
		"missing name":    {Email: "a@b.it", Message: "hi"},
		"missing email":   {Name: "A", Message: "hi"},
		"missing message": {Name: "A", Email: "a@b.it"},
		"bad email":       {Name: "A", Email: "not-an-address", Message: "hi"},
		"display name":    {Name: "A", Email: "Eve <eve@b.it>", Message: "hi"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, req.Validate(), ErrInvalidContact)
		})
	}

	req := validContact()
	require.NoError(t, req.Validate())
	assert.Equal(t, "Giulia", req.Name)
}

func TestContactSubmitStoresAndNotifies(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestContactService(mailer)
	tenant := newFakeTenant("salone")
	tenant.apiKey = "re_test"
	tenant.seed(website.Organization{ID: "salone", Name: "Salone Rosa", Email: "info@salonerosa.it"}, website.Record{
		"website_contact_form_success_message": "Grazie!",
	})

	msg, err := svc.Submit(tenant, validContact())
	require.NoError(t, err)
	assert.Equal(t, "Grazie!", msg)

	svc.Wait()
	require.Len(t, tenant.contacts.stored, 1)
	stored := tenant.contacts.stored[0]
	assert.Equal(t, "salone", stored.SiteID)
	assert.NotEmpty(t, stored.ID)

	require.Len(t, mailer.notifications, 1)
	require.Len(t, mailer.confirmations, 1)
	assert.Equal(t, "Giulia", mailer.notifications[0].Submission.Name)
	assert.Equal(t, tenant.url, mailer.notifications[0].SiteURL)
	assert.Equal(t, website.DefaultContactSubject, mailer.notifications[0].Form.Subject)
}

func TestContactSubmitEmailFailureDoesNotFail(t *testing.T) {
	mailer := &recordingMailer{err: errBoom}
	svc := newTestContactService(mailer)
	tenant := newFakeTenant("salone")
	tenant.apiKey = "re_test"
	tenant.seed(website.Organization{ID: "salone", Name: "Salone Rosa"}, website.Record{})

	msg, err := svc.Submit(tenant, validContact())
	require.NoError(t, err)
	assert.Equal(t, website.DefaultContactSuccessMessage, msg)
	svc.Wait()
	assert.Len(t, mailer.notifications, 1)
}

func TestContactSubmitWithoutEmailSettings(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestContactService(mailer)
	tenant := newFakeTenant("salone")
	tenant.seed(website.Organization{ID: "salone", Name: "Salone Rosa"}, website.Record{})

	_, err := svc.Submit(tenant, validContact())
	require.NoError(t, err)
	svc.Wait()
	assert.Len(t, tenant.contacts.stored, 1)
	assert.Empty(t, mailer.notifications)
}

func TestContactSubmitRejections(t *testing.T) {
	svc := newTestContactService(&recordingMailer{})
	tenant := newFakeTenant("salone")
	tenant.seed(website.Organization{ID: "salone", Name: "Salone Rosa"}, website.Record{"website_show_contact_form": false})

	_, err := svc.Submit(tenant, validContact())
	assert.ErrorIs(t, err, ErrContactFormDisabled)

	_, err = svc.Submit(tenant, ContactRequest{Name: "x"})
	assert.ErrorIs(t, err, ErrInvalidContact)

	tenant.sites.sites["salone"].Record["website_show_contact_form"] = true
	tenant.contacts.err = errBoom
	_, err = svc.Submit(tenant, validContact())
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, tenant.contacts.stored)
}
