package domain

import "errors"

// Domain errors returned by services and repository implementations.

var (
	// ErrTitleRequired indicates an empty title after trimming.
	ErrTitleRequired = errors.New("title is required")

	// ErrTitleTooLong indicates a title longer than 255 characters.
	ErrTitleTooLong = errors.New("title must be 255 characters or less")

	// ErrInvalidID indicates the provided ID is not a valid UUID.
	ErrInvalidID = errors.New("invalid ID format")

	// ErrTaskNotFound indicates the task does not exist or belongs to
	// another user. Repositories never reveal which.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskAlreadyCompleted is returned by the complete operation when
	// the conditional update affected zero rows: the task is already done,
	// missing, or owned by someone else.
	ErrTaskAlreadyCompleted = errors.New("task already completed or not found")

	// ErrSessionNotFound indicates the pomodoro session does not exist,
	// is already stopped, or belongs to another user.
	ErrSessionNotFound = errors.New("session not found")

	// ErrCreateFailed indicates an insert unexpectedly returned no row.
	ErrCreateFailed = errors.New("create returned no row")

	// ErrUnauthenticated indicates no valid caller identity.
	ErrUnauthenticated = errors.New("authentication required")
)
