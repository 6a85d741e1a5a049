package actions

import (
	"context"

	"github.com/ketchupdev/ketchup/internal/domain"
	"github.com/ketchupdev/ketchup/internal/forms"
)

// TaskResult is the discriminated outcome of a single-task action.
// Exactly one of the failure fields is set when Success is false; Values
// echoes the raw input so a form can redisplay what the user typed.
type TaskResult struct {
	Success bool
	Task    *domain.Task
	Errors  *Errors
	Values  forms.Values
}

func taskFailure(errs *Errors, v forms.Values) TaskResult {
	return TaskResult{Errors: errs, Values: v}
}

// TaskListResult is the outcome of the list action.
type TaskListResult struct {
	Success bool
	Tasks   []*domain.Task
	Errors  *Errors
	Values  forms.Values
}

// OpResult is the outcome of an action with no payload (complete).
type OpResult struct {
	Success bool
	Errors  *Errors
	Values  forms.Values
}

// CreateTask validates and creates a task for the current user.
func (a *Actions) CreateTask(ctx context.Context, v forms.Values) TaskResult {
	p, fe := forms.ParseCreateTask(v)
	if fe != nil {
		return taskFailure(fieldErrors(fe), v)
	}

	owner, ok := a.identity.CurrentUserID(ctx)
	if !ok {
		return taskFailure(formError(MsgLoginRequired), v)
	}

	t, err := a.tasks.Create(ctx, owner, p)
	if err != nil {
		logFailure(ctx, "create_task", err)
		return taskFailure(formError(MsgTryAgainLater), v)
	}

	a.views.InvalidateTasks(owner)
	return TaskResult{Success: true, Task: t}
}

// UpdateTask validates and fully replaces a task's mutable fields.
func (a *Actions) UpdateTask(ctx context.Context, v forms.Values) TaskResult {
	p, fe := forms.ParseUpdateTask(v)
	if fe != nil {
		return taskFailure(fieldErrors(fe), v)
	}

	owner, ok := a.identity.CurrentUserID(ctx)
	if !ok {
		return taskFailure(formError(MsgLoginRequired), v)
	}

	t, err := a.tasks.Update(ctx, owner, p)
	if err != nil {
		logFailure(ctx, "update_task", err)
		return taskFailure(formError(MsgTryAgainLater), v)
	}

	a.views.InvalidateTasks(owner)
	return TaskResult{Success: true, Task: t}
}

// DeleteTask hard-deletes a task and returns the deleted row.
func (a *Actions) DeleteTask(ctx context.Context, v forms.Values) TaskResult {
	id, fe := forms.ParseTaskID(v)
	if fe != nil {
		return taskFailure(fieldErrors(fe), v)
	}

	owner, ok := a.identity.CurrentUserID(ctx)
	if !ok {
		return taskFailure(formError(MsgLoginRequired), v)
	}

	t, err := a.tasks.Delete(ctx, owner, id)
	if err != nil {
		logFailure(ctx, "delete_task", err)
		return taskFailure(formError(MsgTryAgainLater), v)
	}

	a.views.InvalidateTasks(owner)
	return TaskResult{Success: true, Task: t}
}

// CompleteTask marks a task done. Completing an already-completed or
// missing task fails with the generic form message; it never silently
// succeeds.
func (a *Actions) CompleteTask(ctx context.Context, v forms.Values) OpResult {
	id, fe := forms.ParseTaskID(v)
	if fe != nil {
		return OpResult{Errors: fieldErrors(fe), Values: v}
	}

	owner, ok := a.identity.CurrentUserID(ctx)
	if !ok {
		return OpResult{Errors: formError(MsgLoginRequired), Values: v}
	}

	if err := a.tasks.Complete(ctx, owner, id); err != nil {
		logFailure(ctx, "complete_task", err)
		return OpResult{Errors: formError(MsgTryAgainLater), Values: v}
	}

	a.views.InvalidateTasks(owner)
	return OpResult{Success: true}
}

// ListTasks returns the current user's tasks per the filter input.
func (a *Actions) ListTasks(ctx context.Context, v forms.Values) TaskListResult {
	f, fe := forms.ParseTaskFilter(v)
	if fe != nil {
		return TaskListResult{Errors: fieldErrors(fe), Values: v}
	}

	owner, ok := a.identity.CurrentUserID(ctx)
	if !ok {
		return TaskListResult{Errors: formError(MsgLoginRequired), Values: v}
	}

	tasks, err := a.tasks.List(ctx, owner, f)
	if err != nil {
		logFailure(ctx, "list_tasks", err)
		return TaskListResult{Errors: formError(MsgTryAgainLater), Values: v}
	}

	return TaskListResult{Success: true, Tasks: tasks}
}
