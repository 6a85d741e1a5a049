package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Filter enum errors.
var (
	ErrInvalidStatusFilter = errors.New("invalid status filter")
	ErrInvalidDueFilter    = errors.New("invalid due filter")
	ErrInvalidSortKey      = errors.New("invalid sort key")
	ErrInvalidSortOrder    = errors.New("invalid sort order")
)

// StatusFilter narrows a task listing by completion state.
type StatusFilter string

const (
	StatusAny  StatusFilter = ""
	StatusTodo StatusFilter = "todo"
	StatusDone StatusFilter = "done"
)

// DueFilter narrows a task listing by due-date bucket.
type DueFilter string

const (
	DueAll         DueFilter = "all"
	DueWithDate    DueFilter = "with_due"
	DueWithoutDate DueFilter = "without_due"
	DueToday       DueFilter = "today"
	DueOverdue     DueFilter = "overdue"
)

// SortKey selects the requested ordering column.
type SortKey string

const (
	SortDueAt            SortKey = "due_at"
	SortCreatedAt        SortKey = "created_at"
	SortEstimatedMinutes SortKey = "estimated_minutes"
)

// SortOrder is the requested direction for the sort key.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// TaskFilter describes a task listing: which rows and in what order.
// The zero value lists everything with the default ordering.
type TaskFilter struct {
	Status StatusFilter
	Due    DueFilter
	SortBy SortKey
	Order  SortOrder
}

// Normalized fills in the documented defaults: all due buckets,
// due_at ascending.
func (f TaskFilter) Normalized() TaskFilter {
	if f.Due == "" {
		f.Due = DueAll
	}
	if f.SortBy == "" {
		f.SortBy = SortDueAt
	}
	if f.Order == "" {
		f.Order = OrderAsc
	}
	return f
}

// canon lowercases and strips separators so both wire spellings
// ("withDue" and "with_due") map to the same enum value.
func canon(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// NewStatusFilter parses a status filter value. Empty means "any".
func NewStatusFilter(s string) (StatusFilter, error) {
	switch canon(s) {
	case "":
		return StatusAny, nil
	case "todo":
		return StatusTodo, nil
	case "done":
		return StatusDone, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidStatusFilter, s)
	}
}

// NewDueFilter parses a due-bucket filter value. Empty means "all".
func NewDueFilter(s string) (DueFilter, error) {
	switch canon(s) {
	case "", "all":
		return DueAll, nil
	case "withdue":
		return DueWithDate, nil
	case "withoutdue":
		return DueWithoutDate, nil
	case "today":
		return DueToday, nil
	case "overdue":
		return DueOverdue, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidDueFilter, s)
	}
}

// NewSortKey parses a sort key value. Empty means the default (due_at).
func NewSortKey(s string) (SortKey, error) {
	switch canon(s) {
	case "", "dueat":
		return SortDueAt, nil
	case "createdat":
		return SortCreatedAt, nil
	case "estimatedminutes":
		return SortEstimatedMinutes, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidSortKey, s)
	}
}

// NewSortOrder parses a sort direction. Empty means ascending.
func NewSortOrder(s string) (SortOrder, error) {
	switch canon(s) {
	case "", "asc":
		return OrderAsc, nil
	case "desc":
		return OrderDesc, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidSortOrder, s)
	}
}
