// Package keygen generates and parses Ketchup session tokens.
//
// Tokens follow the pattern {type}-{service}-{version}-{short}-{secret},
// e.g. sk-ketchup-v1-a3f5d8c2b4e6-<43 base64 chars>. The short token is
// derived from the secret and used for indexed lookup; only a hash of the
// secret is ever stored.
package keygen

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const (
	KeyType = "sk"
	Service = "ketchup"
	Version = "v1"
)

// ErrInvalidTokenFormat indicates a token that does not match the expected
// five-part shape.
var ErrInvalidTokenFormat = errors.New("invalid session token format")

// Token holds the components of a session token.
type Token struct {
	ShortToken string // 12 hex chars for lookup, derived from the secret
	Secret     string // 43 base64url chars, the authenticating part
	FullToken  string // complete assembled token
}

// NewToken creates a fresh session token backed by 256 bits of entropy.
func NewToken() (*Token, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	secret := base64.RawURLEncoding.EncodeToString(raw)

	return &Token{
		ShortToken: ShortToken(secret),
		Secret:     secret,
		FullToken:  fmt.Sprintf("%s-%s-%s-%s-%s", KeyType, Service, Version, ShortToken(secret), secret),
	}, nil
}

// Parse splits a presented token into its components. The secret is the
// last part and may itself contain hyphens, hence SplitN.
func Parse(token string) (*Token, error) {
	parts := strings.SplitN(token, "-", 5)
	if len(parts) != 5 {
		return nil, fmt.Errorf("%w: expected 5 parts, got %d", ErrInvalidTokenFormat, len(parts))
	}
	if parts[0] != KeyType || parts[1] != Service || parts[2] != Version {
		return nil, fmt.Errorf("%w: unknown prefix %s-%s-%s", ErrInvalidTokenFormat, parts[0], parts[1], parts[2])
	}
	if len(parts[3]) != 12 {
		return nil, fmt.Errorf("%w: short token must be 12 hex chars", ErrInvalidTokenFormat)
	}

	return &Token{
		ShortToken: parts[3],
		Secret:     parts[4],
		FullToken:  token,
	}, nil
}

// ShortToken derives the 12-hex-char lookup token from a secret.
// 48 bits of a BLAKE2b-256 digest is plenty for index selectivity; the
// secret hash does the authenticating.
func ShortToken(secret string) string {
	sum := blake2b.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:6])
}

// HashSecret returns the hex BLAKE2b-256 digest stored in place of the
// secret.
func HashSecret(secret string) string {
	sum := blake2b.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
