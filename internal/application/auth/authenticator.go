// Package auth validates bearer session tokens and resolves the acting
// user. Session issuance (passwords, email flows, OAuth) belongs to the
// external auth provider; this package only answers "who is calling".
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ketchupdev/ketchup/internal/domain"
	"github.com/ketchupdev/ketchup/internal/infrastructure/keygen"
)

// Default configuration values.
const (
	DefaultOperationTimeout = 5 * time.Second
	DefaultTouchQueueSize   = 1000
)

// Config holds configuration for the Authenticator.
type Config struct {
	OperationTimeout time.Duration // timeout for storage operations
	TouchQueueSize   int           // buffer size for last-used updates
}

// touch holds a pending last-used-at update.
type touch struct {
	sessionID string
	usedAt    time.Time
}

// Authenticator validates session tokens against the session store.
//
// Last-used bookkeeping is pushed through a buffered channel to a single
// background worker so the request path never waits on it; the queue is
// drained on shutdown.
type Authenticator struct {
	repo             Repository
	appCtx           context.Context
	touches          chan touch
	shutdownChan     chan struct{}
	shutdownOnce     sync.Once
	wg               sync.WaitGroup
	operationTimeout time.Duration
}

// NewAuthenticator creates an authenticator and starts its bookkeeping
// worker. ctx should be the application context, cancelled on shutdown.
func NewAuthenticator(ctx context.Context, repo Repository, config Config) *Authenticator {
	if config.OperationTimeout <= 0 {
		config.OperationTimeout = DefaultOperationTimeout
	}
	if config.TouchQueueSize <= 0 {
		config.TouchQueueSize = DefaultTouchQueueSize
	}

	a := &Authenticator{
		repo:             repo,
		appCtx:           ctx,
		touches:          make(chan touch, config.TouchQueueSize),
		shutdownChan:     make(chan struct{}),
		operationTimeout: config.OperationTimeout,
	}

	a.wg.Add(1)
	go a.processTouches()

	return a
}

// ValidateToken checks a presented bearer token and returns the session
// owner's user id. Malformed, unknown, and expired tokens all come back as
// domain.ErrUnauthenticated.
func (a *Authenticator) ValidateToken(ctx context.Context, token string) (string, error) {
	parsed, err := keygen.Parse(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	sess, err := a.repo.FindSessionByShortToken(ctx, parsed.ShortToken)
	if err != nil {
		return "", err
	}

	// Constant-time comparison of the secret hash.
	presented := keygen.HashSecret(parsed.Secret)
	if subtle.ConstantTimeCompare([]byte(presented), []byte(sess.SecretHash)) != 1 {
		return "", fmt.Errorf("%w: secret mismatch", domain.ErrUnauthenticated)
	}

	if sess.Expired(time.Now().UTC()) {
		return "", fmt.Errorf("%w: session expired", domain.ErrUnauthenticated)
	}

	// Queue the last-used update without blocking the request.
	select {
	case a.touches <- touch{sessionID: sess.ID, usedAt: time.Now().UTC()}:
	default:
		slog.WarnContext(ctx, "last-used queue full, dropping update", "session_id", sess.ID)
	}

	return sess.UserID, nil
}

// processTouches applies queued last-used updates one at a time.
func (a *Authenticator) processTouches() {
	defer a.wg.Done()

	for {
		select {
		case t := <-a.touches:
			ctx, cancel := context.WithTimeout(a.appCtx, a.operationTimeout)
			if err := a.repo.TouchSession(ctx, t.sessionID, t.usedAt); err != nil {
				slog.WarnContext(ctx, "failed to update session last_used_at",
					"session_id", t.sessionID, "error", err)
			}
			cancel()

		case <-a.shutdownChan:
			// Drain what is already queued, then exit. Background context:
			// appCtx is cancelled by now but cleanup should still land.
			for {
				select {
				case t := <-a.touches:
					ctx, cancel := context.WithTimeout(context.Background(), a.operationTimeout)
					_ = a.repo.TouchSession(ctx, t.sessionID, t.usedAt)
					cancel()
				default:
					return
				}
			}
		}
	}
}

// Shutdown stops the bookkeeping worker after draining queued updates.
// Safe to call more than once.
func (a *Authenticator) Shutdown() {
	a.shutdownOnce.Do(func() {
		close(a.shutdownChan)
	})
	a.wg.Wait()
}
