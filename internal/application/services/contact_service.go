package services

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/email"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/performance"
)

var (
	ErrContactFormDisabled = errors.New("contact form is disabled")
	ErrInvalidContact      = errors.New("invalid contact request")
)

const (
	maxContactName    = 200
	maxContactMessage = 5000
)

// ContactRequest is a visitor's contact form submission.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}

// EmailFactory builds a mail client from a tenant's settings.
type EmailFactory func(apiKey, from string) (email.Service, error)

// ContactService stores contact submissions and notifies by email. Email
// delivery runs in the background and never fails a submission.
type ContactService struct {
	config       *ConfigService
	emailFactory EmailFactory
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
	pending      sync.WaitGroup
	now          func() time.Time
}

func NewContactService(config *ConfigService, emailFactory EmailFactory, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ContactService {
	return &ContactService{
		config:       config,
		emailFactory: emailFactory,
		logger:       logger,
		perfTracker:  perfTracker,
		now:          time.Now,
	}
}

// Validate trims the request and checks required fields.
func (r *ContactRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Message = strings.TrimSpace(r.Message)

	switch {
	case r.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidContact)
	case utf8.RuneCountInString(r.Name) > maxContactName:
		return fmt.Errorf("%w: name is too long", ErrInvalidContact)
	case r.Email == "":
		return fmt.Errorf("%w: email is required", ErrInvalidContact)
	case r.Message == "":
		return fmt.Errorf("%w: message is required", ErrInvalidContact)
	case utf8.RuneCountInString(r.Message) > maxContactMessage:
		return fmt.Errorf("%w: message is too long", ErrInvalidContact)
	}
	addr, err := mail.ParseAddress(r.Email)
	if err != nil || addr.Name != "" {
		return fmt.Errorf("%w: email address is not valid", ErrInvalidContact)
	}
	return nil
}

// Submit stores the submission and returns the configured success message.
func (s *ContactService) Submit(t TenantScope, req ContactRequest) (string, error) {
	marker := s.perfTracker.StartOperation("contact_submit", t.ID())
	defer marker.Complete()

	if err := req.Validate(); err != nil {
		marker.SetError(err)
		return "", err
	}

	site, cfg, err := s.config.GetConfig(t)
	if err != nil {
		marker.SetError(err)
		return "", err
	}
	if !cfg.ContactForm.Show {
		marker.SetError(ErrContactFormDisabled)
		return "", ErrContactFormDisabled
	}

	submission := &website.ContactSubmission{
		SiteID:    t.ID(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		CreatedAt: s.now().UTC(),
	}
	if err := t.ContactRepo().Store(t.ID(), submission); err != nil {
		marker.SetError(err)
		return "", fmt.Errorf("failed to store contact submission: %w", err)
	}

	s.logger.Site().Info("Contact submission stored", "tenantId", t.ID(), "submissionId", submission.ID)

	s.notify(t, email.Message{
		Organization: site.Organization.WithDefaults(),
		Form:         cfg.ContactForm,
		SiteURL:      t.PublicURL(),
		Submission:   *submission,
	})

	marker.SetSuccess(true)
	return cfg.ContactForm.SuccessMessage, nil
}

// Recent lists the latest submissions for the admin.
func (s *ContactService) Recent(t TenantScope, limit int) ([]*website.ContactSubmission, error) {
	submissions, err := t.ContactRepo().FindRecent(t.ID(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact submissions: %w", err)
	}
	return submissions, nil
}

// Wait blocks until background email deliveries finish.
func (s *ContactService) Wait() {
	s.pending.Wait()
}

func (s *ContactService) notify(t TenantScope, msg email.Message) {
	if s.emailFactory == nil {
		return
	}
	apiKey, from := t.EmailSettings()
	client, err := s.emailFactory(apiKey, from)
	if err != nil {
		if errors.Is(err, email.ErrNotConfigured) {
			s.logger.Email().Debug("Email not configured, skipping contact notification", "tenantId", t.ID())
		} else {
			s.logger.Email().Error("Failed to create email client", "tenantId", t.ID(), "error", err)
		}
		return
	}

	tenantID := t.ID()
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := client.SendContactNotification(msg); err != nil {
			s.logger.Email().Error("Contact notification failed", "tenantId", tenantID, "error", err)
		}
		if err := client.SendContactConfirmation(msg); err != nil {
			s.logger.Email().Error("Contact confirmation failed", "tenantId", tenantID, "error", err)
		}
	}()
}
