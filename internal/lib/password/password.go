// Package password hashes and verifies system user passwords.
//
// Two schemes exist. "sha256" stores the lowercase hex digest, which is
// what every existing row holds. "bcrypt" is opt-in for new hashes.
// Verification picks the scheme from the stored hash itself, so rows of
// both kinds keep working after the configured scheme changes.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type Scheme string

const (
	SchemeSHA256 Scheme = "sha256"
	SchemeBcrypt Scheme = "bcrypt"
)

// Hasher writes new hashes with one scheme.
type Hasher struct {
	scheme Scheme
	cost   int
}

// NewHasher returns a Hasher for scheme. Unknown schemes fall back to sha256.
func NewHasher(scheme string) *Hasher {
	h := &Hasher{scheme: SchemeSHA256, cost: bcrypt.DefaultCost}
	if Scheme(scheme) == SchemeBcrypt {
		h.scheme = SchemeBcrypt
	}
	return h
}

func (h *Hasher) Scheme() Scheme {
	return h.scheme
}

// Hash returns the stored form of plain.
func (h *Hasher) Hash(plain string) (string, error) {
	if h.scheme == SchemeBcrypt {
		out, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
		if err != nil {
			return "", fmt.Errorf("bcrypt hash: %w", err)
		}
		return string(out), nil
	}
	return sha256Hex(plain), nil
}

// Verify reports whether plain matches the stored hash.
func Verify(stored, plain string) bool {
	if isBcrypt(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(stored)), []byte(sha256Hex(plain))) == 1
}

func isBcrypt(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}

func sha256Hex(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
