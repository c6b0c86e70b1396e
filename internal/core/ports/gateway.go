package ports

import "context"

// Gateway is the sole channel for backend calls. Implementations attach
// the stored credential to every request and run the auth interception
// side effects before any error reaches the caller.
type Gateway interface {
	GetJSON(ctx context.Context, path string, out any) error
	BaseURL() string
	// ResetRedirectGuard re-arms the once-per-episode login navigation.
	// Called when the application returns to the login surface.
	ResetRedirectGuard()
}
