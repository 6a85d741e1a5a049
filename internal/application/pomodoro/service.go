// Package pomodoro provides the application service and repository contract
// for focus-session accounting.
package pomodoro

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ketchupdev/ketchup/internal/domain"
)

// Service provides business logic for pomodoro session tracking.
type Service struct {
	repo Repository

	// Now supplies timestamps; tests may replace it.
	Now func() time.Time
}

// NewService creates a pomodoro service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		Now:  time.Now,
	}
}

// Start begins a session for the task at the current instant.
//
// Starting does not check for an existing running session on the same
// task: a second start simply records a second session. Overlap is the
// caller's intent to manage, and stopped-minute accounting tolerates it.
func (s *Service) Start(ctx context.Context, ownerID, taskID string) (*domain.PomodoroSession, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	now := s.Now().UTC()
	sess := &domain.PomodoroSession{
		ID:        id.String(),
		TaskID:    taskID,
		OwnerID:   ownerID,
		StartedAt: now,
		CreatedAt: now,
	}

	created, err := s.repo.Create(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return created, nil
}

// Stop ends the owner's session at the current instant.
func (s *Service) Stop(ctx context.Context, ownerID, sessionID string) (*domain.PomodoroSession, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}
	return s.repo.Stop(ctx, ownerID, sessionID, s.Now().UTC())
}

// Active returns the owner's running session for the task, or nil when
// there is none.
func (s *Service) Active(ctx context.Context, ownerID, taskID string) (*domain.PomodoroSession, error) {
	return s.repo.FindActive(ctx, ownerID, taskID)
}

// TotalMinutes returns the whole focused minutes recorded for one task.
func (s *Service) TotalMinutes(ctx context.Context, ownerID, taskID string) (int, error) {
	return s.repo.TotalMinutes(ctx, ownerID, taskID)
}

// TotalMinutesByTask returns focused minutes per task for the owner.
func (s *Service) TotalMinutesByTask(ctx context.Context, ownerID string) (map[string]int, error) {
	return s.repo.TotalMinutesByTask(ctx, ownerID)
}
