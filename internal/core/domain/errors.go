package domain

import "errors"

// Failure taxonomy for the session core. An absent credential is not an
// error, just the unauthenticated state, so it has no sentinel here.
var (
	// ErrInvalidCredential marks a stored credential the backend rejected
	// with 401. The gateway purges the store before returning it.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrLoginFailed marks a callback-driven login attempt that failed.
	// It is the only failure the session service surfaces to a caller.
	ErrLoginFailed = errors.New("login failed")

	// ErrForbidden marks a 403. Logged and re-raised; session untouched.
	ErrForbidden = errors.New("access forbidden")

	// ErrServer marks a 5xx from the backend. Session untouched.
	ErrServer = errors.New("server error")

	// ErrNetworkUnreachable marks a transport failure with no response.
	ErrNetworkUnreachable = errors.New("network unreachable")
)
