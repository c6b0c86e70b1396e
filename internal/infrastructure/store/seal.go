package store

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

var errSealedTooShort = errors.New("sealed credential too short")

const saltSize = 16

// sealer encrypts the credential at rest with XChaCha20-Poly1305 under an
// Argon2id key derived from the configured storage secret. Each seal uses
// a fresh salt and nonce, stored alongside the ciphertext:
// [salt(16) | nonce(24) | ciphertext].
type sealer struct {
	secret string
}

func newSealer(secret string) *sealer {
	return &sealer{secret: secret}
}

func (s *sealer) key(salt []byte) []byte {
	return argon2.IDKey([]byte(s.secret), salt, 1, 64*1024, 4, chacha20poly1305.KeySize)
}

func (s *sealer) seal(credential string) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	aead, err := chacha20poly1305.NewX(s.key(salt))
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, saltSize+len(nonce)+len(credential)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, []byte(credential), nil), nil
}

func (s *sealer) open(data []byte) (string, error) {
	if len(data) < saltSize+chacha20poly1305.NonceSizeX {
		return "", errSealedTooShort
	}
	salt, rest := data[:saltSize], data[saltSize:]

	aead, err := chacha20poly1305.NewX(s.key(salt))
	if err != nil {
		return "", err
	}

	nonce, ciphertext := rest[:aead.NonceSize()], rest[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
