package auth

import (
	"context"
	"time"
)

// Session is a server-side record of a login session issued by the auth
// provider. Only the hash of the token secret is stored.
type Session struct {
	ID         string
	UserID     string
	ShortToken string
	SecretHash string
	CreatedAt  time.Time
	LastUsedAt *time.Time
	ExpiresAt  *time.Time // nil = does not expire
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

// Repository defines storage operations for auth sessions.
type Repository interface {
	// CreateSession persists a new session row.
	CreateSession(ctx context.Context, s *Session) error

	// FindSessionByShortToken looks up a session by its indexed short
	// token. Returns domain.ErrUnauthenticated when absent.
	FindSessionByShortToken(ctx context.Context, shortToken string) (*Session, error)

	// TouchSession records when the session was last used. Best-effort
	// bookkeeping; failures are logged, not surfaced.
	TouchSession(ctx context.Context, sessionID string, usedAt time.Time) error
}
