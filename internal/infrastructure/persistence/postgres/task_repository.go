package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ketchupdev/ketchup/internal/domain"
	"github.com/ketchupdev/ketchup/internal/infrastructure/persistence/taskquery"
)

// TaskRepository implements task.Repository.
type TaskRepository struct {
	pool *pgxpool.Pool
}

const taskColumns = "id, owner_id, title, note, estimated_minutes, due_at, completed_at, created_at"

// scanTask scans one task row and normalizes timestamps to UTC.
func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Note, &t.EstimatedMinutes,
		&t.DueAt, &t.CompletedAt, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	normalizeTaskTimes(&t)
	return &t, nil
}

func normalizeTaskTimes(t *domain.Task) {
	t.CreatedAt = t.CreatedAt.UTC()
	if t.DueAt != nil {
		utc := t.DueAt.UTC()
		t.DueAt = &utc
	}
	if t.CompletedAt != nil {
		utc := t.CompletedAt.UTC()
		t.CompletedAt = &utc
	}
}

// Create inserts a task and returns the persisted row.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (id, owner_id, title, note, estimated_minutes, due_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+taskColumns,
		t.ID, t.OwnerID, t.Title, t.Note, t.EstimatedMinutes, t.DueAt, t.CreatedAt)

	created, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: task %s", domain.ErrCreateFailed, t.ID)
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

// List returns the owner's tasks matching the filter.
func (r *TaskRepository) List(ctx context.Context, ownerID string, f domain.TaskFilter, now time.Time) ([]*domain.Task, error) {
	q := taskquery.Build(taskquery.Postgres{}, ownerID, f, now)

	rows, err := r.pool.Query(ctx, fmt.Sprintf(
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
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = $1, note = $2, estimated_minutes = $3, due_at = $4
		WHERE id = $5 AND owner_id = $6
		RETURNING `+taskColumns,
		p.Title, p.Note, p.EstimatedMinutes, p.DueAt, p.TaskID, p.OwnerID)

	updated, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: task %s", domain.ErrTaskNotFound, p.TaskID)
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

// Delete hard-deletes the task, scoped by owner, returning the deleted row.
func (r *TaskRepository) Delete(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, `
		DELETE FROM tasks
		WHERE id = $1 AND owner_id = $2
		RETURNING `+taskColumns,
		taskID, ownerID)

	deleted, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: task %s", domain.ErrTaskNotFound, taskID)
		}
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	return deleted, nil
}

// Complete sets completed_at only when it is currently NULL. The condition
// lives in the WHERE clause so two racing completions cannot both win.
func (r *TaskRepository) Complete(ctx context.Context, ownerID, taskID string, completedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET completed_at = $1
		WHERE id = $2 AND owner_id = $3 AND completed_at IS NULL`,
		completedAt, taskID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: task %s", domain.ErrTaskAlreadyCompleted, taskID)
	}
	return nil
}
