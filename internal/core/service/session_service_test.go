package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/qmsagent/console/internal/core/domain"
)

type memStore struct {
	cred    string
	getErr  error
	setErr  error
	sets    int
	removes int
}

func (m *memStore) Get(_ context.Context) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	return m.cred, nil
}

func (m *memStore) Set(_ context.Context, credential string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.cred = credential
	return nil
}

func (m *memStore) Remove(_ context.Context) error {
	m.removes++
	m.cred = ""
	return nil
}

type stubFetcher struct {
	user  *domain.User
	err   error
	calls int
}

func (f *stubFetcher) CurrentUser(_ context.Context) (*domain.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func testUser() *domain.User {
	return &domain.User{
		ID:       1,
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Kim",
		Role:     "admin",
		IsActive: true,
	}
}

func newService(store *memStore, fetcher *stubFetcher) *SessionService {
	return NewSessionService(context.Background(), store, fetcher, zerolog.Nop())
}

func TestCheckAuth_NoCredentialSkipsNetwork(t *testing.T) {
	store := &memStore{}
	fetcher := &stubFetcher{user: testUser()}
	svc := newService(store, fetcher)

	svc.CheckAuth(context.Background())

	if fetcher.calls != 0 {
		t.Fatalf("expected zero network calls, got %d", fetcher.calls)
	}
	state := svc.Snapshot()
	if state.Authenticated || state.Loading || state.User != nil {
		t.Fatalf("expected settled unauthenticated state, got %+v", state)
	}
}

func TestCheckAuth_ValidCredential(t *testing.T) {
	store := &memStore{cred: "abc"}
	fetcher := &stubFetcher{user: testUser()}
	svc := newService(store, fetcher)

	svc.CheckAuth(context.Background())

	state := svc.Snapshot()
	if !state.Authenticated {
		t.Fatalf("expected authenticated state, got %+v", state)
	}
	if state.Credential != "abc" {
		t.Fatalf("credential = %q, want %q", state.Credential, "abc")
	}
	if state.User == nil || state.User.Username != "alice" {
		t.Fatalf("user not populated: %+v", state.User)
	}
	if state.Loading {
		t.Fatalf("loading should settle")
	}
}

func TestCheckAuth_RejectedCredentialPurges(t *testing.T) {
	store := &memStore{cred: "expired"}
	fetcher := &stubFetcher{err: domain.ErrInvalidCredential}
	svc := newService(store, fetcher)

	svc.CheckAuth(context.Background())

	if store.cred != "" {
		t.Fatalf("credential not purged")
	}
	state := svc.Snapshot()
	if state.Authenticated || state.User != nil || state.Credential != "" {
		t.Fatalf("expected cleared state, got %+v", state)
	}
}

func TestCheckAuth_Idempotent(t *testing.T) {
	store := &memStore{cred: "abc"}
	fetcher := &stubFetcher{user: testUser()}
	svc := newService(store, fetcher)

	svc.CheckAuth(context.Background())
	first := svc.Snapshot()
	svc.CheckAuth(context.Background())
	second := svc.Snapshot()

	if first.Authenticated != second.Authenticated ||
		first.Credential != second.Credential ||
		first.Loading != second.Loading ||
		*first.User != *second.User {
		t.Fatalf("repeat check diverged: %+v vs %+v", first, second)
	}
}

func TestLogin_PersistsBeforeValidation(t *testing.T) {
	store := &memStore{}
	fetcher := &stubFetcher{user: testUser()}
	svc := newService(store, fetcher)

	if err := svc.Login(context.Background(), "xyz"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if store.sets != 1 || store.cred != "xyz" {
		t.Fatalf("credential not persisted: sets=%d cred=%q", store.sets, store.cred)
	}
	state := svc.Snapshot()
	if !state.Authenticated || state.Credential != "xyz" {
		t.Fatalf("expected authenticated state, got %+v", state)
	}
}

func TestLogin_FailureSurfacesErrorAndPurges(t *testing.T) {
	store := &memStore{}
	fetcher := &stubFetcher{err: domain.ErrInvalidCredential}
	svc := newService(store, fetcher)

	err := svc.Login(context.Background(), "bad")
	if !errors.Is(err, domain.ErrLoginFailed) {
		t.Fatalf("expected ErrLoginFailed, got %v", err)
	}

	if store.cred != "" {
		t.Fatalf("credential not purged after failed login")
	}
	state := svc.Snapshot()
	if state.Authenticated || state.User != nil {
		t.Fatalf("expected cleared state, got %+v", state)
	}
}

func TestLogin_StoreFailureSurfacesError(t *testing.T) {
	store := &memStore{setErr: errors.New("disk full")}
	fetcher := &stubFetcher{user: testUser()}
	svc := newService(store, fetcher)

	err := svc.Login(context.Background(), "xyz")
	if !errors.Is(err, domain.ErrLoginFailed) {
		t.Fatalf("expected ErrLoginFailed, got %v", err)
	}
	if fetcher.calls != 0 {
		t.Fatalf("validation must not run when persistence failed")
	}
}

func TestLoginThenLogout_RoundTrip(t *testing.T) {
	store := &memStore{}
	fetcher := &stubFetcher{user: testUser()}
	svc := newService(store, fetcher)

	if err := svc.Login(context.Background(), "xyz"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	svc.Logout(context.Background())

	if store.cred != "" {
		t.Fatalf("store not empty after logout")
	}
	state := svc.Snapshot()
	if state != (domain.SessionState{}) {
		t.Fatalf("expected cleared state, got %+v", state)
	}
}

func TestNewSessionService_LoadsStoredCredential(t *testing.T) {
	store := &memStore{cred: "persisted"}
	svc := newService(store, &stubFetcher{})

	state := svc.Snapshot()
	if !state.Loading {
		t.Fatalf("expected loading before first check")
	}
	if state.Credential != "persisted" {
		t.Fatalf("credential = %q, want %q", state.Credential, "persisted")
	}
}
