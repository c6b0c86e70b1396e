package ports

import "context"

// CredentialStore persists the single opaque bearer credential across
// process restarts. The credential is never parsed or inspected, only
// stored, attached to requests and erased.
type CredentialStore interface {
	// Get returns the stored credential, or "" when none is stored.
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, credential string) error
	// Remove is idempotent: removing an absent credential is not an error.
	Remove(ctx context.Context) error
}
