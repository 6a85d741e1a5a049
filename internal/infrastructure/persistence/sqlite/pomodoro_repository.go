package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ketchupdev/ketchup/internal/domain"
)

// SessionRepository implements pomodoro.Repository.
type SessionRepository struct {
	db *sql.DB
}

const sessionColumns = "id, task_id, owner_id, started_at, stopped_at, created_at"

func scanSession(row rowScanner) (*domain.PomodoroSession, error) {
	var (
		sess      domain.PomodoroSession
		startedAt int64
		stoppedAt sql.NullInt64
		createdAt int64
	)
	err := row.Scan(&sess.ID, &sess.TaskID, &sess.OwnerID, &startedAt, &stoppedAt, &createdAt)
	if err != nil {
		return nil, err
	}

	sess.StartedAt = fromMS(startedAt)
	sess.StoppedAt = timeFromNull(stoppedAt)
	sess.CreatedAt = fromMS(createdAt)
	return &sess, nil
}

// Create inserts a session row.
func (r *SessionRepository) Create(ctx context.Context, sess *domain.PomodoroSession) (*domain.PomodoroSession, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO pomodoro_sessions (id, task_id, owner_id, started_at, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING `+sessionColumns,
		sess.ID, sess.TaskID, sess.OwnerID, ms(sess.StartedAt), ms(sess.CreatedAt))

	created, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: session %s", domain.ErrCreateFailed, sess.ID)
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return created, nil
}

// Stop ends a running session, filtered by both id and owner.
func (r *SessionRepository) Stop(ctx context.Context, ownerID, sessionID string, stoppedAt time.Time) (*domain.PomodoroSession, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE pomodoro_sessions
		SET stopped_at = ?
		WHERE id = ? AND owner_id = ? AND stopped_at IS NULL
		RETURNING `+sessionColumns,
		ms(stoppedAt), sessionID, ownerID)

	stopped, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: session %s", domain.ErrSessionNotFound, sessionID)
		}
		return nil, fmt.Errorf("failed to stop session: %w", err)
	}
	return stopped, nil
}

// FindActive returns the most recently started running session for the
// task, or nil when there is none.
func (r *SessionRepository) FindActive(ctx context.Context, ownerID, taskID string) (*domain.PomodoroSession, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+sessionColumns+`
		FROM pomodoro_sessions
		WHERE owner_id = ? AND task_id = ? AND stopped_at IS NULL
		ORDER BY started_at DESC
		LIMIT 1`,
		ownerID, taskID)

	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active session: %w", err)
	}
	return sess, nil
}

// stoppedSessions fetches the owner's stopped sessions, optionally limited
// to one task. Minutes are summed in process via PomodoroSession.Minutes,
// the same floor computation the Postgres aggregate expresses in SQL.
func (r *SessionRepository) stoppedSessions(ctx context.Context, ownerID string, taskID *string) ([]*domain.PomodoroSession, error) {
	query := `SELECT ` + sessionColumns + `
		FROM pomodoro_sessions
		WHERE owner_id = ? AND stopped_at IS NOT NULL`
	args := []any{ownerID}
	if taskID != nil {
		query += " AND task_id = ?"
		args = append(args, *taskID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.PomodoroSession
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}
	return sessions, nil
}

// TotalMinutes sums elapsed minutes over the owner's stopped sessions for
// one task.
func (r *SessionRepository) TotalMinutes(ctx context.Context, ownerID, taskID string) (int, error) {
	sessions, err := r.stoppedSessions(ctx, ownerID, &taskID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, sess := range sessions {
		total += sess.Minutes()
	}
	return total, nil
}

// TotalMinutesByTask computes the owner's elapsed minutes grouped by task.
func (r *SessionRepository) TotalMinutesByTask(ctx context.Context, ownerID string) (map[string]int, error) {
	sessions, err := r.stoppedSessions(ctx, ownerID, nil)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int)
	for _, sess := range sessions {
		totals[sess.TaskID] += sess.Minutes()
	}
	return totals, nil
}
