package ports

import (
	"context"

	"github.com/qmsagent/console/internal/core/domain"
)

// SessionManager owns the authoritative session state and its transitions.
// CheckAuth and Logout never fail; Login is the single operation that
// surfaces an error, because only the callback flow needs to distinguish
// "login failed" from "not logged in yet".
type SessionManager interface {
	CheckAuth(ctx context.Context)
	Login(ctx context.Context, credential string) error
	Logout(ctx context.Context)
	Snapshot() domain.SessionState
}
