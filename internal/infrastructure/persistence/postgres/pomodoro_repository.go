package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ketchupdev/ketchup/internal/domain"
)

// SessionRepository implements pomodoro.Repository.
type SessionRepository struct {
	pool *pgxpool.Pool
}

const sessionColumns = "id, task_id, owner_id, started_at, stopped_at, created_at"

// elapsedMinutesExpr floors whole minutes between start and stop. Must stay
// in lockstep with PomodoroSession.Minutes, which the SQLite backend uses
// for the same computation.
const elapsedMinutesExpr = "FLOOR(EXTRACT(EPOCH FROM (stopped_at - started_at)) / 60)"

func scanSession(row pgx.Row) (*domain.PomodoroSession, error) {
	var sess domain.PomodoroSession
	err := row.Scan(&sess.ID, &sess.TaskID, &sess.OwnerID,
		&sess.StartedAt, &sess.StoppedAt, &sess.CreatedAt)
	if err != nil {
		return nil, err
	}
	sess.StartedAt = sess.StartedAt.UTC()
	sess.CreatedAt = sess.CreatedAt.UTC()
	if sess.StoppedAt != nil {
		utc := sess.StoppedAt.UTC()
		sess.StoppedAt = &utc
	}
	return &sess, nil
}

// Create inserts a session row.
func (r *SessionRepository) Create(ctx context.Context, sess *domain.PomodoroSession) (*domain.PomodoroSession, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO pomodoro_sessions (id, task_id, owner_id, started_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+sessionColumns,
		sess.ID, sess.TaskID, sess.OwnerID, sess.StartedAt, sess.CreatedAt)

	created, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: session %s", domain.ErrCreateFailed, sess.ID)
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return created, nil
}

// Stop ends a running session. Filtering by owner as well as id is the
// access-control check for this entity.
func (r *SessionRepository) Stop(ctx context.Context, ownerID, sessionID string, stoppedAt time.Time) (*domain.PomodoroSession, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE pomodoro_sessions
		SET stopped_at = $1
		WHERE id = $2 AND owner_id = $3 AND stopped_at IS NULL
		RETURNING `+sessionColumns,
		stoppedAt, sessionID, ownerID)

	stopped, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: session %s", domain.ErrSessionNotFound, sessionID)
		}
		return nil, fmt.Errorf("failed to stop session: %w", err)
	}
	return stopped, nil
}

// FindActive returns the most recently started running session for the
// task, or nil when there is none.
func (r *SessionRepository) FindActive(ctx context.Context, ownerID, taskID string) (*domain.PomodoroSession, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM pomodoro_sessions
		WHERE owner_id = $1 AND task_id = $2 AND stopped_at IS NULL
		ORDER BY started_at DESC
		LIMIT 1`,
		ownerID, taskID)

	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active session: %w", err)
	}
	return sess, nil
}

// TotalMinutes sums elapsed minutes over the owner's stopped sessions for
// one task.
func (r *SessionRepository) TotalMinutes(ctx context.Context, ownerID, taskID string) (int, error) {
	var minutes int64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(`+elapsedMinutesExpr+`), 0)::BIGINT
		FROM pomodoro_sessions
		WHERE owner_id = $1 AND task_id = $2 AND stopped_at IS NOT NULL`,
		ownerID, taskID).Scan(&minutes)
	if err != nil {
		return 0, fmt.Errorf("failed to sum minutes: %w", err)
	}
	return int(minutes), nil
}

// TotalMinutesByTask runs the same aggregation grouped by task in a single
// query.
func (r *SessionRepository) TotalMinutesByTask(ctx context.Context, ownerID string) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT task_id, COALESCE(SUM(`+elapsedMinutesExpr+`), 0)::BIGINT
		FROM pomodoro_sessions
		WHERE owner_id = $1 AND stopped_at IS NOT NULL
		GROUP BY task_id`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum minutes by task: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var taskID string
		var minutes int64
		if err := rows.Scan(&taskID, &minutes); err != nil {
			return nil, fmt.Errorf("failed to scan minutes row: %w", err)
		}
		totals[taskID] = int(minutes)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read minutes rows: %w", err)
	}
	return totals, nil
}
