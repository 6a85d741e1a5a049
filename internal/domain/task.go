package domain

import "time"

// Task is a single todo entry owned by one user.
//
// CompletedAt doubles as the completion flag: nil means the task is still
// open, non-nil records when it was finished. It is set exactly once by the
// complete operation and never cleared.
type Task struct {
	ID      string
	OwnerID string // set at creation from the authenticated caller, immutable
	Title   string

	// Optional metadata
	Note             *string
	EstimatedMinutes *int       // >= 1 when set
	DueAt            *time.Time // no range restriction, past dates allowed

	CompletedAt *time.Time
	CreatedAt   time.Time
}

// Completed reports whether the task has been marked done.
func (t *Task) Completed() bool {
	return t.CompletedAt != nil
}

// PomodoroSession is one focus interval recorded against a task.
//
// A session with StoppedAt == nil is active. Sessions only count toward
// minute totals once stopped; the countdown itself is a client concern.
type PomodoroSession struct {
	ID      string
	TaskID  string
	OwnerID string

	StartedAt time.Time
	StoppedAt *time.Time
	CreatedAt time.Time
}

// Active reports whether the session is still running.
func (s *PomodoroSession) Active() bool {
	return s.StoppedAt == nil
}

// Minutes returns the whole minutes elapsed between start and stop,
// truncated (a 25m24s session counts as 25). Returns 0 for active sessions.
func (s *PomodoroSession) Minutes() int {
	if s.StoppedAt == nil {
		return 0
	}
	return int(s.StoppedAt.Sub(s.StartedAt) / time.Minute)
}

// NewTaskParams carries the validated fields for task creation.
// Nil optional fields mean "absent": the column keeps its default.
type NewTaskParams struct {
	Title            string
	Note             *string
	EstimatedMinutes *int
	DueAt            *time.Time
}

// UpdateTaskParams carries the validated fields for a full replace of a
// task's mutable fields. Unlike creation, a nil optional field here is an
// explicit instruction to clear the stored value.
type UpdateTaskParams struct {
	TaskID           string
	OwnerID          string
	Title            string
	Note             *string
	EstimatedMinutes *int
	DueAt            *time.Time
}
