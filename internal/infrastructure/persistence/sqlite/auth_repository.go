package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ketchupdev/ketchup/internal/application/auth"
	"github.com/ketchupdev/ketchup/internal/domain"
)

// AuthRepository implements auth.Repository.
type AuthRepository struct {
	db *sql.DB
}

// CreateSession persists a new auth session.
func (r *AuthRepository) CreateSession(ctx context.Context, sess *auth.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO auth_sessions (id, user_id, short_token, secret_hash, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.UserID, sess.ShortToken, sess.SecretHash,
		ms(sess.CreatedAt), msPtr(sess.ExpiresAt))
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindSessionByShortToken looks up a session by its indexed short token.
func (r *AuthRepository) FindSessionByShortToken(ctx context.Context, shortToken string) (*auth.Session, error) {
	var (
		sess      auth.Session
		createdAt int64
		lastUsed  sql.NullInt64
		expiresAt sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, short_token, secret_hash, created_at, last_used_at, expires_at
		FROM auth_sessions
		WHERE short_token = ?`,
		shortToken).Scan(&sess.ID, &sess.UserID, &sess.ShortToken, &sess.SecretHash,
		&createdAt, &lastUsed, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: unknown session token", domain.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	sess.CreatedAt = fromMS(createdAt)
	sess.LastUsedAt = timeFromNull(lastUsed)
	sess.ExpiresAt = timeFromNull(expiresAt)
	return &sess, nil
}

// TouchSession records when the session was last used.
func (r *AuthRepository) TouchSession(ctx context.Context, sessionID string, usedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE auth_sessions SET last_used_at = ? WHERE id = ?`,
		ms(usedAt), sessionID)
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}
