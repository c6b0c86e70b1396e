package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/qmsagent/console/internal/core/domain"
	"github.com/qmsagent/console/internal/core/ports"
)

// ProfileFetcher is the slice of the identity provider the session
// machine needs: fetch the profile for whatever credential is attached.
type ProfileFetcher interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
}

// SessionService holds the single authoritative session state and applies
// the reducer transitions. The original runtime was single-threaded; here
// concurrent HTTP handlers share the state, so a mutex guards it.
type SessionService struct {
	store    ports.CredentialStore
	identity ProfileFetcher
	log      zerolog.Logger

	mu    sync.Mutex
	state domain.SessionState
}

// NewSessionService builds the session in its initial shape: any
// previously stored credential loaded, loading=true until the first
// CheckAuth settles.
func NewSessionService(ctx context.Context, store ports.CredentialStore, identity ProfileFetcher, log zerolog.Logger) *SessionService {
	cred, err := store.Get(ctx)
	if err != nil {
		log.Error().Err(err).Msg("read stored credential at startup")
	}
	return &SessionService{
		store:    store,
		identity: identity,
		log:      log,
		state:    domain.InitialState(cred),
	}
}

func (s *SessionService) dispatch(a domain.Action) {
	s.mu.Lock()
	s.state = domain.Reduce(s.state, a)
	s.mu.Unlock()
}

// Snapshot returns a copy of the current session state.
func (s *SessionService) Snapshot() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CheckAuth validates any stored credential against the backend and
// settles the session either way. With nothing stored it fails fast with
// zero network calls. It never returns an error and is idempotent: a
// repeat run with an unchanged credential reproduces the same state.
func (s *SessionService) CheckAuth(ctx context.Context) {
	cred, err := s.store.Get(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("read stored credential")
		s.dispatch(domain.AuthFailure{})
		return
	}
	if cred == "" {
		s.dispatch(domain.AuthFailure{})
		return
	}

	s.dispatch(domain.AuthStart{})

	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		s.log.Info().Err(err).Msg("stored credential rejected")
		if rmErr := s.store.Remove(ctx); rmErr != nil {
			s.log.Error().Err(rmErr).Msg("purge rejected credential")
		}
		s.dispatch(domain.AuthFailure{})
		return
	}

	s.dispatch(domain.AuthSuccess{User: user, Credential: cred})
}

// Login persists the callback-delivered credential, then validates it.
// This is the one transition that surfaces failure to its caller: the
// callback flow must distinguish "login failed" from "not logged in yet".
func (s *SessionService) Login(ctx context.Context, credential string) error {
	if err := s.store.Set(ctx, credential); err != nil {
		s.dispatch(domain.AuthFailure{})
		return fmt.Errorf("%w: %v", domain.ErrLoginFailed, err)
	}

	s.dispatch(domain.AuthStart{})

	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		if rmErr := s.store.Remove(ctx); rmErr != nil {
			s.log.Error().Err(rmErr).Msg("purge credential after failed login")
		}
		s.dispatch(domain.AuthFailure{})
		return fmt.Errorf("%w: %v", domain.ErrLoginFailed, err)
	}

	s.dispatch(domain.AuthSuccess{User: user, Credential: credential})
	return nil
}

// Logout purges the credential and clears the session. Purge failures are
// logged, never surfaced: the in-memory session is cleared regardless.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.store.Remove(ctx); err != nil {
		s.log.Error().Err(err).Msg("purge credential on logout")
	}
	s.dispatch(domain.Logout{})
}
