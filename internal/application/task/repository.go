package task

import (
	"context"
	"time"

	"github.com/ketchupdev/ketchup/internal/domain"
)

// Repository defines storage operations for tasks. Every operation is
// scoped to the acting user's id; update and delete carry the owner in
// their WHERE clause so cross-owner access is structurally impossible.
type Repository interface {
	// Create inserts a task and returns the persisted row.
	// Returns domain.ErrCreateFailed if the insert yields no row.
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)

	// List returns the owner's tasks matching the filter, ordered per the
	// filter's sort specification. now anchors the today/overdue buckets.
	// An empty result is a nil or empty slice, not an error.
	List(ctx context.Context, ownerID string, f domain.TaskFilter, now time.Time) ([]*domain.Task, error)

	// Update replaces the mutable fields (title, note, estimated_minutes,
	// due_at) and returns the updated row.
	// Returns domain.ErrTaskNotFound when zero rows were affected.
	Update(ctx context.Context, p domain.UpdateTaskParams) (*domain.Task, error)

	// Delete hard-deletes the task and returns the deleted row.
	// Returns domain.ErrTaskNotFound when zero rows were affected.
	Delete(ctx context.Context, ownerID, taskID string) (*domain.Task, error)

	// Complete sets completed_at, but only when it is currently NULL. The
	// conditional WHERE clause is what makes racing double-completion safe:
	// the loser affects zero rows and gets domain.ErrTaskAlreadyCompleted.
	Complete(ctx context.Context, ownerID, taskID string, completedAt time.Time) error
}
