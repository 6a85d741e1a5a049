package handler

import (
	"time"

	"github.com/ketchupdev/ketchup/internal/domain"
)

type taskDTO struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Note             *string    `json:"note,omitempty"`
	EstimatedMinutes *int       `json:"estimated_minutes,omitempty"`
	DueAt            *time.Time `json:"due_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	Completed        bool       `json:"completed"`
}

func toTaskDTO(t *domain.Task) taskDTO {
	return taskDTO{
		ID:               t.ID,
		Title:            t.Title,
		Note:             t.Note,
		EstimatedMinutes: t.EstimatedMinutes,
		DueAt:            t.DueAt,
		CompletedAt:      t.CompletedAt,
		CreatedAt:        t.CreatedAt,
		Completed:        t.Completed(),
	}
}

func toTaskDTOs(tasks []*domain.Task) []taskDTO {
	// Empty list marshals as [], not null.
	dtos := make([]taskDTO, 0, len(tasks))
	for _, t := range tasks {
		dtos = append(dtos, toTaskDTO(t))
	}
	return dtos
}

type sessionDTO struct {
	ID        string     `json:"id"`
	TaskID    string     `json:"task_id"`
	StartedAt time.Time  `json:"started_at"`
	StoppedAt *time.Time `json:"stopped_at,omitempty"`
	Active    bool       `json:"active"`
	Minutes   *int       `json:"minutes,omitempty"`
}

func toSessionDTO(s *domain.PomodoroSession) *sessionDTO {
	if s == nil {
		return nil
	}
	dto := &sessionDTO{
		ID:        s.ID,
		TaskID:    s.TaskID,
		StartedAt: s.StartedAt,
		StoppedAt: s.StoppedAt,
		Active:    s.Active(),
	}
	if !s.Active() {
		m := s.Minutes()
		dto.Minutes = &m
	}
	return dto
}
