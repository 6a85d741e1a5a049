package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ketchupdev/ketchup/internal/application/auth"
	"github.com/ketchupdev/ketchup/internal/domain"
)

// AuthRepository implements auth.Repository.
type AuthRepository struct {
	pool *pgxpool.Pool
}

// CreateSession persists a new auth session.
func (r *AuthRepository) CreateSession(ctx context.Context, sess *auth.Session) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO auth_sessions (id, user_id, short_token, secret_hash, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		sess.ID, sess.UserID, sess.ShortToken, sess.SecretHash, sess.CreatedAt, sess.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindSessionByShortToken looks up a session by its indexed short token.
func (r *AuthRepository) FindSessionByShortToken(ctx context.Context, shortToken string) (*auth.Session, error) {
	var sess auth.Session
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, short_token, secret_hash, created_at, last_used_at, expires_at
		FROM auth_sessions
		WHERE short_token = $1`,
		shortToken).Scan(&sess.ID, &sess.UserID, &sess.ShortToken, &sess.SecretHash,
		&sess.CreatedAt, &sess.LastUsedAt, &sess.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: unknown session token", domain.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &sess, nil
}

// TouchSession records when the session was last used.
func (r *AuthRepository) TouchSession(ctx context.Context, sessionID string, usedAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE auth_sessions SET last_used_at = $1 WHERE id = $2`,
		usedAt, sessionID)
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}
