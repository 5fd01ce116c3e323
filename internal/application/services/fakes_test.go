package services

import (
	"errors"
	"sync"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/repositories"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/email"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/security"
)

type memSiteRepo struct {
	mu      sync.Mutex
	sites   map[string]*website.Site
	saves   int
	saveErr error
}

func newMemSiteRepo() *memSiteRepo {
	return &memSiteRepo{sites: map[string]*website.Site{}}
}

func (r *memSiteRepo) Load(tenantID string) (*website.Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sites[tenantID]
	if !ok {
		return nil, repositories.ErrSiteNotFound
	}
	cp := *s
	cp.Record = s.Record.Clone()
	return &cp, nil
}

func (r *memSiteRepo) Save(tenantID string, site *website.Site) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	cp := *site
	cp.Record = site.Record.Clone()
	cp.UpdatedAt = time.Now()
	site.UpdatedAt = cp.UpdatedAt
	r.sites[tenantID] = &cp
	r.saves++
	return nil
}

type memContactRepo struct {
	mu     sync.Mutex
	stored []*website.ContactSubmission
	err    error
}

func (r *memContactRepo) Store(tenantID string, s *website.ContactSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	s.ID = security.GenerateULIDAt(s.CreatedAt)
	s.SiteID = tenantID
	r.stored = append(r.stored, s)
	return nil
}

func (r *memContactRepo) FindRecent(tenantID string, limit int) ([]*website.ContactSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stored, nil
}

type fakeTenant struct {
	id       string
	sites    *memSiteRepo
	contacts *memContactRepo
	url      string
	apiKey   string
	hash     string
	secret   string
}

func newFakeTenant(id string) *fakeTenant {
	return &fakeTenant{id: id, sites: newMemSiteRepo(), contacts: &memContactRepo{}, url: "https://" + id + ".example.com"}
}

func (f *fakeTenant) ID() string { return f.id }
func (f *fakeTenant) SiteRepo() repositories.SiteRepository { return f.sites }
func (f *fakeTenant) ContactRepo() repositories.ContactSubmissionRepository { return f.contacts }
func (f *fakeTenant) PublicURL() string { return f.url }
func (f *fakeTenant) EmailSettings() (string, string) { return f.apiKey, "" }
func (f *fakeTenant) AdminCredentials() (string, string) { return f.hash, f.secret }

func (f *fakeTenant) seed(org website.Organization, record website.Record) {
	f.sites.sites[f.id] = &website.Site{Organization: org, Record: record}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []messaging.Event
}

func (b *recordingBroadcaster) Publish(tenantID string, event messaging.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBroadcaster) ClientCount(string) int { return 0 }

type recordingMailer struct {
	mu            sync.Mutex
	notifications []email.Message
	confirmations []email.Message
	err           error
}

func (m *recordingMailer) SendContactNotification(msg email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, msg)
	return m.err
}

func (m *recordingMailer) SendContactConfirmation(msg email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmations = append(m.confirmations, msg)
	return m.err
}

var errBoom = errors.New("boom")
