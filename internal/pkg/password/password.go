// Package password derives salted PBKDF2-SHA256 hashes for stored credentials.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the salt length in bytes (128 bits).
	SaltSize = 16
	// KeySize is the derived key length in bytes (256 bits).
	KeySize = 32
	// DefaultIterations matches the iteration count used for every stored hash so far.
	DefaultIterations = 100_000
)

// Hasher hashes passwords with a fixed iteration count.
type Hasher struct {
	iterations int
}

func NewHasher(iterations int) *Hasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Hasher{iterations: iterations}
}

// Hash returns base64(PBKDF2-HMAC-SHA256(password, salt)).
// The salt must be exactly SaltSize bytes.
func (h *Hasher) Hash(password string, salt []byte) string {
	if len(salt) != SaltSize {
		panic(fmt.Sprintf("password: salt must be %d bytes, got %d", SaltSize, len(salt)))
	}
	key := pbkdf2.Key([]byte(password), salt, h.iterations, KeySize, sha256.New)
	return base64.StdEncoding.EncodeToString(key)
}

// Verify reports whether password hashes to the stored value under salt.
func (h *Hasher) Verify(password string, salt []byte, stored string) bool {
	if len(salt) != SaltSize || stored == "" {
		return false
	}
	candidate := h.Hash(password, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(stored)) == 1
}

// GenerateSalt returns SaltSize random bytes.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}
