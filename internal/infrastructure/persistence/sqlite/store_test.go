package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ketchupdev/ketchup/internal/domain"
	"github.com/ketchupdev/ketchup/internal/infrastructure/persistence/sqlite"
)

// openTestStore opens a fresh in-memory database with migrations applied.
func openTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newID(t *testing.T) string {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id.String()
}

// mustCreateTask inserts a task owned by ownerID with the given title and
// due date.
func mustCreateTask(t *testing.T, store *sqlite.Store, ownerID, title string, dueAt *time.Time) *domain.Task {
	t.Helper()

	created, err := store.Tasks().Create(context.Background(), &domain.Task{
		ID:        newID(t),
		OwnerID:   ownerID,
		Title:     title,
		DueAt:     dueAt,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return created
}

// mustCreateSession inserts a session and, when stoppedAt is non-nil, stops
// it at that instant.
func mustCreateSession(t *testing.T, store *sqlite.Store, ownerID, taskID string, startedAt time.Time, stoppedAt *time.Time) *domain.PomodoroSession {
	t.Helper()

	created, err := store.Sessions().Create(context.Background(), &domain.PomodoroSession{
		ID:        newID(t),
		TaskID:    taskID,
		OwnerID:   ownerID,
		StartedAt: startedAt,
		CreatedAt: startedAt,
	})
	require.NoError(t, err)

	if stoppedAt != nil {
		stopped, err := store.Sessions().Stop(context.Background(), ownerID, created.ID, *stoppedAt)
		require.NoError(t, err)
		return stopped
	}
	return created
}

func utc(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}
