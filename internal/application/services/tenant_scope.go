// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import "github.com/AtRiskMedia/sitecraft-go/internal/domain/repositories"

// TenantScope is what the site services need from a resolved tenant. The
// request-scoped tenant.Context satisfies it.
type TenantScope interface {
	ID() string
	SiteRepo() repositories.SiteRepository
	ContactRepo() repositories.ContactSubmissionRepository
	PublicURL() string
	EmailSettings() (apiKey, from string)
	AdminCredentials() (passwordHash, jwtSecret string)
}
