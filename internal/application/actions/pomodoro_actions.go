package actions

import (
	"context"

	"github.com/ketchupdev/ketchup/internal/domain"
	"github.com/ketchupdev/ketchup/internal/forms"
)

// SessionResult is the discriminated outcome of a session action. For the
// active-session query, Success with a nil Session means "none running".
type SessionResult struct {
	Success bool
	Session *domain.PomodoroSession
	Errors  *Errors
	Values  forms.Values
}

func sessionFailure(errs *Errors, v forms.Values) SessionResult {
	return SessionResult{Errors: errs, Values: v}
}

// MinutesResult is the outcome of the per-task minutes query.
type MinutesResult struct {
	Success bool
	Minutes int
	Errors  *Errors
	Values  forms.Values
}

// MinutesByTaskResult is the outcome of the all-tasks minutes query.
type MinutesByTaskResult struct {
	Success bool
	Minutes map[string]int
	Errors  *Errors
}

// StartSession begins a pomodoro session for a task.
func (a *Actions) StartSession(ctx context.Context, v forms.Values) SessionResult {
	p, fe := forms.ParseStartSession(v)
	if fe != nil {
		return sessionFailure(fieldErrors(fe), v)
	}

	owner, ok := a.identity.CurrentUserID(ctx)
	if !ok {
		return sessionFailure(formError(MsgLoginRequired), v)
	}

	sess, err := a.sessions.Start(ctx, owner, p.TaskID)
	if err != nil {
		logFailure(ctx, "start_session", err)
		return sessionFailure(formError(MsgTryAgainLater), v)
	}

	return SessionResult{Success: true, Session: sess}
}

// StopSession ends a running session. Focused minutes only count once a
// session is stopped, so the dashboard view is stale afterwards.
func (a *Actions) StopSession(ctx context.Context, v forms.Values) SessionResult {
	p, fe := forms.ParseStopSession(v)
	if fe != nil {
		return sessionFailure(fieldErrors(fe), v)
	}

	owner, ok := a.identity.CurrentUserID(ctx)
	if !ok {
		return sessionFailure(formError(MsgLoginRequired), v)
	}

	sess, err := a.sessions.Stop(ctx, owner, p.SessionID)
	if err != nil {
		logFailure(ctx, "stop_session", err)
		return sessionFailure(formError(MsgTryAgainLater), v)
	}

	a.views.InvalidateTasks(owner)
	return SessionResult{Success: true, Session: sess}
}

// ActiveSession returns the running session for a task, if any.
func (a *Actions) ActiveSession(ctx context.Context, v forms.Values) SessionResult {
	p, fe := forms.ParseStartSession(v)
	if fe != nil {
		return sessionFailure(fieldErrors(fe), v)
	}

	owner, ok := a.identity.CurrentUserID(ctx)
	if !ok {
		return sessionFailure(formError(MsgLoginRequired), v)
	}

	sess, err := a.sessions.Active(ctx, owner, p.TaskID)
	if err != nil {
		logFailure(ctx, "active_session", err)
		return sessionFailure(formError(MsgTryAgainLater), v)
	}

	return SessionResult{Success: true, Session: sess}
}

// TaskMinutes returns the focused minutes recorded for one task.
func (a *Actions) TaskMinutes(ctx context.Context, v forms.Values) MinutesResult {
	id, fe := forms.ParseTaskID(v)
	if fe != nil {
		return MinutesResult{Errors: fieldErrors(fe), Values: v}
	}

	owner, ok := a.identity.CurrentUserID(ctx)
	if !ok {
		return MinutesResult{Errors: formError(MsgLoginRequired), Values: v}
	}

	minutes, err := a.sessions.TotalMinutes(ctx, owner, id)
	if err != nil {
		logFailure(ctx, "task_minutes", err)
		return MinutesResult{Errors: formError(MsgTryAgainLater), Values: v}
	}

	return MinutesResult{Success: true, Minutes: minutes}
}

// AllTaskMinutes returns focused minutes per task for the current user.
func (a *Actions) AllTaskMinutes(ctx context.Context) MinutesByTaskResult {
	owner, ok := a.identity.CurrentUserID(ctx)
	if !ok {
		return MinutesByTaskResult{Errors: formError(MsgLoginRequired)}
	}

	minutes, err := a.sessions.TotalMinutesByTask(ctx, owner)
	if err != nil {
		logFailure(ctx, "all_task_minutes", err)
		return MinutesByTaskResult{Errors: formError(MsgTryAgainLater)}
	}

	return MinutesByTaskResult{Success: true, Minutes: minutes}
}
