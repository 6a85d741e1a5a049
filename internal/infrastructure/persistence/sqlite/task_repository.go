package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ketchupdev/ketchup/internal/domain"
	"github.com/ketchupdev/ketchup/internal/infrastructure/persistence/taskquery"
)

// TaskRepository implements task.Repository.
type TaskRepository struct {
	db *sql.DB
}

const taskColumns = "id, owner_id, title, note, estimated_minutes, due_at, completed_at, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t         domain.Task
		note      sql.NullString
		estimated sql.NullInt64
		dueAt     sql.NullInt64
		completed sql.NullInt64
		createdAt int64
	)
	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &note, &estimated, &dueAt, &completed, &createdAt)
	if err != nil {
		return nil, err
	}

	t.Note = strFromNull(note)
	t.EstimatedMinutes = intFromNull(estimated)
	t.DueAt = timeFromNull(dueAt)
	t.CompletedAt = timeFromNull(completed)
	t.CreatedAt = fromMS(createdAt)
	return &t, nil
}

func optInt(n *int) any {
	if n == nil {
		return nil
	}
	return int64(*n)
}

func optStr(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// Create inserts a task and returns the persisted row.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO tasks (id, owner_id, title, note, estimated_minutes, due_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+taskColumns,
		t.ID, t.OwnerID, t.Title, optStr(t.Note), optInt(t.EstimatedMinutes),
		msPtr(t.DueAt), ms(t.CreatedAt))

	created, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: task %s", domain.ErrCreateFailed, t.ID)
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

// List returns the owner's tasks matching the filter.
func (r *TaskRepository) List(ctx context.Context, ownerID string, f domain.TaskFilter, now time.Time) ([]*domain.Task, error) {
	q := taskquery.Build(taskquery.SQLite{}, ownerID, f, now)

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT %s FROM tasks WHERE %s ORDER BY %s",
		taskColumns, q.Where, q.OrderBy,
	), q.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	return tasks, nil
}

// Update replaces the mutable fields, scoped by owner.
func (r *TaskRepository) Update(ctx context.Context, p domain.UpdateTaskParams) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE tasks
		SET title = ?, note = ?, estimated_minutes = ?, due_at = ?
		WHERE id = ? AND owner_id = ?
		RETURNING `+taskColumns,
		p.Title, optStr(p.Note), optInt(p.EstimatedMinutes), msPtr(p.DueAt),
		p.TaskID, p.OwnerID)

	updated, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: task %s", domain.ErrTaskNotFound, p.TaskID)
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

// Delete hard-deletes the task, scoped by owner, returning the deleted row.
func (r *TaskRepository) Delete(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		DELETE FROM tasks
		WHERE id = ? AND owner_id = ?
		RETURNING `+taskColumns,
		taskID, ownerID)

	deleted, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: task %s", domain.ErrTaskNotFound, taskID)
		}
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	return deleted, nil
}

// Complete sets completed_at only when it is currently NULL.
func (r *TaskRepository) Complete(ctx context.Context, ownerID, taskID string, completedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET completed_at = ?
		WHERE id = ? AND owner_id = ? AND completed_at IS NULL`,
		ms(completedAt), taskID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: task %s", domain.ErrTaskAlreadyCompleted, taskID)
	}
	return nil
}
