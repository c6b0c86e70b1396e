package ports

import (
	"context"

	"github.com/qmsagent/console/internal/core/domain"
)

// IdentityProvider is the stateless facade over the backend's auth
// endpoints.
type IdentityProvider interface {
	// LoginURL fetches the external-provider redirect target from the
	// backend (the SPA-style embedding variant).
	LoginURL(ctx context.Context) (string, error)
	// ExternalLoginURL returns the backend's login-initiation endpoint,
	// computed locally for a full navigation (no fetch).
	ExternalLoginURL() string
	// CurrentUser fetches the authenticated profile. Fails with
	// domain.ErrInvalidCredential when no valid credential is attached.
	CurrentUser(ctx context.Context) (*domain.User, error)
	// ValidateCredential returns nil without a network call when no
	// credential is stored; otherwise it fetches the profile, purging the
	// credential and returning nil on failure.
	ValidateCredential(ctx context.Context) (*domain.User, error)
	// SignOut purges the credential and navigates to the login surface.
	SignOut(ctx context.Context) error
}
