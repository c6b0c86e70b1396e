// Package store provides the durable persistence boundary for the single
// opaque credential: a file-backed store for normal installs and a
// redis-backed store for shared console deployments. Neither inspects the
// credential's content.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const credentialFile = "credential"

// FileStore keeps the credential in one file under a state directory,
// surviving process restarts but not an explicit Remove. Reads and writes
// are plain local I/O, safe to call before any network activity.
type FileStore struct {
	path   string
	sealer *sealer
}

// NewFileStore creates the state directory if needed. When secret is
// non-empty the credential is sealed at rest.
func NewFileStore(stateDir, secret string) (*FileStore, error) {
	if err := os.MkdirAll(stateDir, 0o700); err != nil {
		return nil, fmt.Errorf("store: create state dir: %w", err)
	}
	s := &FileStore{path: filepath.Join(stateDir, credentialFile)}
	if secret != "" {
		s.sealer = newSealer(secret)
	}
	return s, nil
}

func (s *FileStore) Get(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("store: read credential: %w", err)
	}
	if s.sealer == nil {
		return string(data), nil
	}
	cred, err := s.sealer.open(data)
	if err != nil {
		return "", fmt.Errorf("store: unseal credential: %w", err)
	}
	return cred, nil
}

func (s *FileStore) Set(_ context.Context, credential string) error {
	data := []byte(credential)
	if s.sealer != nil {
		sealed, err := s.sealer.seal(credential)
		if err != nil {
			return fmt.Errorf("store: seal credential: %w", err)
		}
		data = sealed
	}

	// Write-then-rename so a crash mid-write never leaves a torn file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("store: write credential: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("store: replace credential: %w", err)
	}
	return nil
}

func (s *FileStore) Remove(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: remove credential: %w", err)
	}
	return nil
}
