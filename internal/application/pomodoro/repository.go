package pomodoro

import (
	"context"
	"time"

	"github.com/ketchupdev/ketchup/internal/domain"
)

// Repository defines storage operations for pomodoro sessions.
//
// Elapsed minutes are always floor((stopped - started) seconds / 60);
// whether a backend computes that in SQL or in process, the per-task and
// grouped aggregation paths must agree for identical data.
type Repository interface {
	// Create inserts a session row (stopped_at NULL).
	// Returns domain.ErrCreateFailed if the insert yields no row.
	Create(ctx context.Context, s *domain.PomodoroSession) (*domain.PomodoroSession, error)

	// Stop sets stopped_at on a running session, filtered by both session
	// id and owner id - the double predicate is the access-control check
	// for this entity. Returns domain.ErrSessionNotFound when zero rows
	// were affected (missing, wrong owner, or already stopped).
	Stop(ctx context.Context, ownerID, sessionID string, stoppedAt time.Time) (*domain.PomodoroSession, error)

	// FindActive returns the owner's running session for the task, or nil
	// (no error) when there is none. When several are running the most
	// recently started one is returned.
	FindActive(ctx context.Context, ownerID, taskID string) (*domain.PomodoroSession, error)

	// TotalMinutes sums elapsed minutes over the owner's stopped sessions
	// for one task. Returns 0 when there are none.
	TotalMinutes(ctx context.Context, ownerID, taskID string) (int, error)

	// TotalMinutesByTask is the same computation grouped by task in a
	// single query. Returns an empty map when the owner has no stopped
	// sessions.
	TotalMinutesByTask(ctx context.Context, ownerID string) (map[string]int, error)
}
