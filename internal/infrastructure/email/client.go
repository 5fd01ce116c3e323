// Package email provides the email client for sending transactional emails.
package email

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/email/templates"
	"github.com/AtRiskMedia/sitecraft-go/pkg/config"
	"github.com/resendlabs/resend-go"
)

// ErrNotConfigured is returned when a tenant has no Resend API key.
var ErrNotConfigured = errors.New("email delivery is not configured")

// Message is one contact form submission together with the site it was
// sent from.
type Message struct {
	Organization website.Organization
	Form         website.ContactFormSettings
	SiteURL      string
	Submission   website.ContactSubmission
}

// Service defines the interface for sending emails, allowing for mock implementations in tests.
type Service interface {
	SendContactNotification(msg Message) error
	SendContactConfirmation(msg Message) error
}

// sender is the part of the Resend SDK the client uses.
type sender interface {
	Send(params *resend.SendEmailRequest) (resend.SendEmailResponse, error)
}

// ResendClient is the concrete implementation of the email Service using the Resend API.
type ResendClient struct {
	emails    sender
	fromEmail string
}

// NewResendClient builds a client for one tenant. An empty from address
// falls back to the configured default.
func NewResendClient(apiKey, fromEmail string) (*ResendClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(fromEmail) == "" {
		fromEmail = config.DefaultEmailFrom
	}
	client := resend.NewClient(apiKey)
	return &ResendClient{emails: client.Emails, fromEmail: fromEmail}, nil
}

// SendContactNotification forwards a submission to the organization's inbox.
func (c *ResendClient) SendContactNotification(msg Message) error {
	to := msg.Form.Email
	if to == "" {
		to = msg.Organization.Email
	}
	if to == "" {
		return fmt.Errorf("failed to send contact notification: organization %s has no email address", msg.Organization.ID)
	}

	subject := msg.Form.Subject
	if subject == "" {
		subject = website.DefaultContactSubject
	}

	props := contactProps(msg)
	params := &resend.SendEmailRequest{
		From:    c.from(msg.Organization.Name),
		To:      []string{to},
		Subject: subject,
		Html:    c.layout(msg, "Nuovo messaggio da "+props.VisitorName, templates.GetContactNotificationContent(props)),
		ReplyTo: msg.Submission.Email,
	}

	_, err := c.emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send contact notification via Resend: %w", err)
	}
	return nil
}

// SendContactConfirmation acknowledges a submission to the visitor.
func (c *ResendClient) SendContactConfirmation(msg Message) error {
	if msg.Submission.Email == "" {
		return fmt.Errorf("failed to send contact confirmation: submission has no email address")
	}

	props := contactProps(msg)
	params := &resend.SendEmailRequest{
		From:    c.from(msg.Organization.Name),
		To:      []string{msg.Submission.Email},
		Subject: "Abbiamo ricevuto il tuo messaggio - " + msg.Organization.Name,
		Html:    c.layout(msg, props.SuccessMessage, templates.GetContactConfirmationContent(props)),
	}
	if msg.Organization.Email != "" {
		params.ReplyTo = msg.Organization.Email
	}

	_, err := c.emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send contact confirmation via Resend: %w", err)
	}
	return nil
}

func (c *ResendClient) from(name string) string {
	if name == "" {
		return c.fromEmail
	}
	return fmt.Sprintf("%s <%s>", strings.ReplaceAll(name, `"`, ""), c.fromEmail)
}

func (c *ResendClient) layout(msg Message, preheader, content string) string {
	return templates.GetEmailLayout(templates.EmailLayoutProps{
		Preheader:      preheader,
		Content:        content,
		BrandName:      msg.Organization.Name,
		BrandColor:     msg.Organization.PrimaryColor,
		FooterText:     "Messaggio inviato dal modulo contatti del sito.",
		CompanyAddress: msg.Organization.FullAddress(),
	})
}

func contactProps(msg Message) templates.ContactEmailProps {
	success := msg.Form.SuccessMessage
	if success == "" {
		success = website.DefaultContactSuccessMessage
	}
	return templates.ContactEmailProps{
		SiteName:       msg.Organization.Name,
		BrandColor:     msg.Organization.PrimaryColor,
		SiteURL:        msg.SiteURL,
		VisitorName:    msg.Submission.Name,
		VisitorEmail:   msg.Submission.Email,
		VisitorPhone:   msg.Submission.Phone,
		Message:        msg.Submission.Message,
		SuccessMessage: success,
		Address:        msg.Organization.FullAddress(),
	}
}
