package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthNotConfigured  = errors.New("admin login is not configured for this tenant")
)

// AuthResult holds authentication result data
type AuthResult struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthService handles admin login and token checks
type AuthService struct {
	expiry      time.Duration
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAuthService creates a new authentication service
func NewAuthService(expiry time.Duration, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AuthService {
	return &AuthService{
		expiry:      expiry,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// AuthenticateAdmin checks the password against the tenant's bcrypt hash
// and issues a tenant-bound token.
func (a *AuthService) AuthenticateAdmin(t TenantScope, password string) (*AuthResult, error) {
	marker := a.perfTracker.StartOperation("admin_login", t.ID())
	defer marker.Complete()

	hash, secret := t.AdminCredentials()
	if hash == "" || secret == "" {
		marker.SetError(ErrAuthNotConfigured)
		return nil, ErrAuthNotConfigured
	}
	if !security.CheckPassword(hash, password) {
		a.logger.LogAuthOperation("admin_login", t.ID(), security.AdminRole, false)
		marker.SetError(ErrInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := security.GenerateAdminToken(t.ID(), secret, a.expiry)
	if err != nil {
		marker.SetError(err)
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	a.logger.LogAuthOperation("admin_login", t.ID(), security.AdminRole, true)
	marker.SetSuccess(true)
	return &AuthResult{Token: token, Role: security.AdminRole, ExpiresAt: expiresAt}, nil
}

// ValidateAdminToken verifies a bearer token for the tenant.
func (a *AuthService) ValidateAdminToken(t TenantScope, token string) (*security.AdminClaims, error) {
	_, secret := t.AdminCredentials()
	if secret == "" {
		return nil, ErrAuthNotConfigured
	}
	claims, err := security.ValidateAdminToken(token, secret, t.ID())
	if err != nil {
		return nil, err
	}
	return claims, nil
}
