// Package task provides the application service and repository contract for
// task management.
package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ketchupdev/ketchup/internal/domain"
)

// Service provides business logic for task management on top of a
// Repository. Inputs are already validated by the forms layer; the service
// owns id generation, timestamping, and domain-error passthrough.
type Service struct {
	repo Repository

	// Now supplies timestamps; tests may replace it.
	Now func() time.Time
}

// NewService creates a task service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		Now:  time.Now,
	}
}

// Create inserts a new task for the owner.
func (s *Service) Create(ctx context.Context, ownerID string, p domain.NewTaskParams) (*domain.Task, error) {
	// Re-validate the title at the domain boundary; the forms layer already
	// checked it for form callers, programmatic callers may not have.
	title, err := domain.NewTitle(p.Title)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	t := &domain.Task{
		ID:               id.String(),
		OwnerID:          ownerID,
		Title:            title.String(),
		Note:             p.Note,
		EstimatedMinutes: p.EstimatedMinutes,
		DueAt:            utcPtr(p.DueAt),
		CreatedAt:        s.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

// List returns the owner's tasks per the filter, with defaults applied.
func (s *Service) List(ctx context.Context, ownerID string, f domain.TaskFilter) ([]*domain.Task, error) {
	tasks, err := s.repo.List(ctx, ownerID, f.Normalized(), s.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Update replaces the task's mutable fields.
func (s *Service) Update(ctx context.Context, ownerID string, p domain.UpdateTaskParams) (*domain.Task, error) {
	title, err := domain.NewTitle(p.Title)
	if err != nil {
		return nil, err
	}
	p.Title = title.String()
	p.OwnerID = ownerID
	p.DueAt = utcPtr(p.DueAt)

	return s.repo.Update(ctx, p)
}

// Delete hard-deletes the task and returns the deleted row.
func (s *Service) Delete(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	if taskID == "" {
		return nil, domain.ErrTaskNotFound
	}
	return s.repo.Delete(ctx, ownerID, taskID)
}

// Complete marks the task done at the current instant. Completing a task
// that is already done (or missing) returns domain.ErrTaskAlreadyCompleted
// and leaves the stored completion timestamp untouched.
func (s *Service) Complete(ctx context.Context, ownerID, taskID string) error {
	if taskID == "" {
		return domain.ErrTaskAlreadyCompleted
	}
	return s.repo.Complete(ctx, ownerID, taskID, s.Now().UTC())
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
