package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ketchupdev/ketchup/internal/domain"
	"github.com/ketchupdev/ketchup/internal/infrastructure/keygen"
)

// mockSessionStore holds sessions keyed by short token and records touch
// calls.
type mockSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	touched  []string
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: map[string]*Session{}}
}

func (m *mockSessionStore) CreateSession(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ShortToken] = s
	return nil
}

func (m *mockSessionStore) FindSessionByShortToken(ctx context.Context, shortToken string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[shortToken]
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return s, nil
}

func (m *mockSessionStore) TouchSession(ctx context.Context, sessionID string, usedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touched = append(m.touched, sessionID)
	return nil
}

func (m *mockSessionStore) touchedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.touched...)
}

// mintSession stores a fresh session and returns its bearer token.
func mintSession(t *testing.T, store *mockSessionStore, userID string, expiresAt *time.Time) string {
	t.Helper()

	token, err := keygen.NewToken()
	require.NoError(t, err)

	require.NoError(t, store.CreateSession(context.Background(), &Session{
		ID:         "sess-" + token.ShortToken,
		UserID:     userID,
		ShortToken: token.ShortToken,
		SecretHash: keygen.HashSecret(token.Secret),
		CreatedAt:  time.Now().UTC(),
		ExpiresAt:  expiresAt,
	}))
	return token.FullToken
}

func TestValidateTokenSuccess(t *testing.T) {
	store := newMockSessionStore()
	a := NewAuthenticator(context.Background(), store, Config{})
	defer a.Shutdown()

	token := mintSession(t, store, "user-1", nil)

	userID, err := a.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestValidateTokenRejections(t *testing.T) {
	store := newMockSessionStore()
	a := NewAuthenticator(context.Background(), store, Config{})
	defer a.Shutdown()

	valid := mintSession(t, store, "user-1", nil)

	t.Run("malformed token", func(t *testing.T) {
		_, err := a.ValidateToken(context.Background(), "not-a-token")
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("unknown short token", func(t *testing.T) {
		other, err := keygen.NewToken()
		require.NoError(t, err)
		_, err = a.ValidateToken(context.Background(), other.FullToken)
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("wrong secret for a known short token", func(t *testing.T) {
		parsed, err := keygen.Parse(valid)
		require.NoError(t, err)

		forged := "sk-ketchup-v1-" + parsed.ShortToken + "-AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
		_, err = a.ValidateToken(context.Background(), forged)
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("expired session", func(t *testing.T) {
		past := time.Now().UTC().Add(-time.Hour)
		expired := mintSession(t, store, "user-2", &past)
		_, err := a.ValidateToken(context.Background(), expired)
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("unexpired session still valid", func(t *testing.T) {
		future := time.Now().UTC().Add(time.Hour)
		fresh := mintSession(t, store, "user-3", &future)
		userID, err := a.ValidateToken(context.Background(), fresh)
		require.NoError(t, err)
		assert.Equal(t, "user-3", userID)
	})
}

func TestShutdownDrainsTouchQueue(t *testing.T) {
	store := newMockSessionStore()
	a := NewAuthenticator(context.Background(), store, Config{TouchQueueSize: 16})

	token := mintSession(t, store, "user-1", nil)

	for i := 0; i < 3; i++ {
		_, err := a.ValidateToken(context.Background(), token)
		require.NoError(t, err)
	}

	// Shutdown blocks until queued last-used updates have been applied.
	a.Shutdown()
	assert.Len(t, store.touchedIDs(), 3)

	// Idempotent.
	a.Shutdown()
}
