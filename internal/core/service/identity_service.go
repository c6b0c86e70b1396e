package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/qmsagent/console/internal/core/domain"
	"github.com/qmsagent/console/internal/core/ports"
)

const (
	externalLoginPath = "/auth/google/login"
	currentUserPath   = "/auth/me"
)

// IdentityService is the stateless facade over the backend's auth
// endpoints. All state lives in the credential store and the session
// service; this type only translates calls.
type IdentityService struct {
	gw       ports.Gateway
	store    ports.CredentialStore
	nav      ports.Navigator
	validate *validator.Validate
	log      zerolog.Logger
}

func NewIdentityService(gw ports.Gateway, store ports.CredentialStore, nav ports.Navigator, log zerolog.Logger) *IdentityService {
	return &IdentityService{
		gw:       gw,
		store:    store,
		nav:      nav,
		validate: validator.New(),
		log:      log,
	}
}

// LoginURL fetches the external-provider redirect target from the backend.
func (s *IdentityService) LoginURL(ctx context.Context) (string, error) {
	var resp struct {
		LoginURL string `json:"login_url"`
	}
	if err := s.gw.GetJSON(ctx, externalLoginPath, &resp); err != nil {
		return "", err
	}
	if resp.LoginURL == "" {
		return "", fmt.Errorf("identity: backend returned empty login_url")
	}
	return resp.LoginURL, nil
}

// ExternalLoginURL returns the backend's login-initiation endpoint. The
// caller navigates there directly; no intermediate fetch happens.
func (s *IdentityService) ExternalLoginURL() string {
	return s.gw.BaseURL() + externalLoginPath
}

// CurrentUser fetches the authenticated profile. A missing or rejected
// credential surfaces as domain.ErrInvalidCredential from the gateway.
func (s *IdentityService) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := s.gw.GetJSON(ctx, currentUserPath, &user); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(&user); err != nil {
		return nil, fmt.Errorf("identity: malformed user profile: %w", err)
	}
	return &user, nil
}

// ValidateCredential checks the stored credential against the backend.
// With nothing stored it returns nil without a network call. A rejected
// credential is purged and also yields nil; absence of a session is not
// an error here.
func (s *IdentityService) ValidateCredential(ctx context.Context) (*domain.User, error) {
	cred, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cred == "" {
		return nil, nil
	}

	user, err := s.CurrentUser(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("stored credential rejected")
		if rmErr := s.store.Remove(ctx); rmErr != nil {
			return nil, rmErr
		}
		return nil, nil
	}
	return user, nil
}

// SignOut purges the credential and navigates to the login surface.
func (s *IdentityService) SignOut(ctx context.Context) error {
	if err := s.store.Remove(ctx); err != nil {
		return err
	}
	s.nav.ToLogin()
	return nil
}
