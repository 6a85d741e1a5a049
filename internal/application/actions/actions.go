// Package actions exposes the validated, authorized operations the
// transport layer calls: create/update/delete/complete task, list tasks,
// start/stop/query pomodoro sessions.
//
// Every action follows the same sequence: parse and validate the raw input
// (no I/O), resolve the caller's identity, call the application service,
// and shape the outcome into a discriminated result. Errors never cross
// this boundary as Go errors: validation failures come back field-scoped
// with the raw values echoed for redisplay, everything that goes wrong
// after I/O starts is logged with full detail and surfaced as one generic,
// retryable form-level message.
package actions

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ketchupdev/ketchup/internal/application/pomodoro"
	"github.com/ketchupdev/ketchup/internal/application/task"
	"github.com/ketchupdev/ketchup/internal/domain"
	"github.com/ketchupdev/ketchup/internal/forms"
)

// Form-level messages. The retry message deliberately does not distinguish
// "not found" from "database down": both look the same to the form.
const (
	MsgLoginRequired = "login required"
	MsgTryAgainLater = "failed, please retry later"
)

// Identity resolves the acting user for a request. The concrete resolver
// lives with the auth middleware; tests substitute their own.
type Identity interface {
	// CurrentUserID returns the authenticated user's id, or ok=false when
	// the request carries no usable identity.
	CurrentUserID(ctx context.Context) (id string, ok bool)
}

// Invalidator is notified when a mutation makes the owner's dashboard task
// view stale.
type Invalidator interface {
	InvalidateTasks(ownerID string)
}

// Errors carries an action's failure detail: per-field messages, form-level
// messages, or both.
type Errors struct {
	Fields map[string][]string
	Form   []string
}

// Actions bundles the six task/session operations behind one dependency
// set.
type Actions struct {
	tasks    *task.Service
	sessions *pomodoro.Service
	identity Identity
	views    Invalidator
}

// New creates the action set.
func New(tasks *task.Service, sessions *pomodoro.Service, identity Identity, views Invalidator) *Actions {
	return &Actions{
		tasks:    tasks,
		sessions: sessions,
		identity: identity,
		views:    views,
	}
}

func fieldErrors(fe forms.FieldErrors) *Errors {
	return &Errors{Fields: fe}
}

func formError(msg string) *Errors {
	return &Errors{Form: []string{msg}}
}

// logFailure records the real error server-side before it is replaced with
// the generic message. Domain sentinels (not found, already completed) are
// expected outcomes and log at warn; anything else is an infrastructure
// failure.
func logFailure(ctx context.Context, op string, err error) {
	if isDomainFailure(err) {
		slog.WarnContext(ctx, "action rejected", "op", op, "error", err)
		return
	}
	slog.ErrorContext(ctx, "action failed", "op", op, "error", err)
}

func isDomainFailure(err error) bool {
	for _, sentinel := range []error{
		domain.ErrTaskNotFound,
		domain.ErrTaskAlreadyCompleted,
		domain.ErrSessionNotFound,
		domain.ErrTitleRequired,
		domain.ErrTitleTooLong,
		domain.ErrInvalidID,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
