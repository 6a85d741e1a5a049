// Package taskquery translates a domain.TaskFilter into SQL predicates and
// ordering, shared by the Postgres and SQLite repositories. The two backends
// differ only in placeholder style and timestamp encoding, captured by the
// Dialect interface.
package taskquery

import (
	"fmt"
	"strings"
	"time"

	"github.com/ketchupdev/ketchup/internal/domain"
)

// Dialect abstracts the engine-specific parts of query rendering.
type Dialect interface {
	// Placeholder renders the n-th (1-based) bind placeholder.
	Placeholder(n int) string
	// TimeValue encodes a timestamp as a bind argument.
	TimeValue(t time.Time) any
}

// Postgres renders $n placeholders and binds time.Time directly
// (TIMESTAMPTZ columns).
type Postgres struct{}

func (Postgres) Placeholder(n int) string  { return fmt.Sprintf("$%d", n) }
func (Postgres) TimeValue(t time.Time) any { return t }

// SQLite renders ? placeholders and binds unix milliseconds
// (INTEGER columns).
type SQLite struct{}

func (SQLite) Placeholder(n int) string  { return "?" }
func (SQLite) TimeValue(t time.Time) any { return t.UnixMilli() }

// Query is a rendered WHERE clause (always owner-scoped), its bind
// arguments, and an ORDER BY specification.
type Query struct {
	Where   string
	Args    []any
	OrderBy string
}

// builder accumulates AND-combined conditions.
type builder struct {
	dialect    Dialect
	conds      []string
	args       []any
	incomplete bool // completed_at IS NULL already present
}

func (b *builder) add(cond string) {
	b.conds = append(b.conds, cond)
}

// addArg appends a condition with a single bind argument; format must
// contain one %s for the placeholder.
func (b *builder) addArg(format string, arg any) {
	b.args = append(b.args, arg)
	b.add(fmt.Sprintf(format, b.dialect.Placeholder(len(b.args))))
}

// requireIncomplete adds the open-task condition at most once, so
// status=todo combined with due=today does not repeat it.
func (b *builder) requireIncomplete() {
	if !b.incomplete {
		b.add("completed_at IS NULL")
		b.incomplete = true
	}
}

// Build renders filter f for the given owner. now anchors the "today" and
// "overdue" buckets: today means due on or before the end of now's calendar
// day in now's location, overdue means due strictly before now. All active
// conditions combine with AND; no filter yields a predicate scoped only by
// owner.
func Build(d Dialect, ownerID string, f domain.TaskFilter, now time.Time) Query {
	f = f.Normalized()
	b := &builder{dialect: d}

	b.addArg("owner_id = %s", ownerID)

	switch f.Status {
	case domain.StatusTodo:
		b.requireIncomplete()
	case domain.StatusDone:
		b.add("completed_at IS NOT NULL")
	}

	switch f.Due {
	case domain.DueWithDate:
		b.add("due_at IS NOT NULL")
	case domain.DueWithoutDate:
		b.add("due_at IS NULL")
	case domain.DueToday:
		b.requireIncomplete()
		b.add("due_at IS NOT NULL")
		b.addArg("due_at <= %s", d.TimeValue(endOfDay(now)))
	case domain.DueOverdue:
		b.requireIncomplete()
		b.add("due_at IS NOT NULL")
		b.addArg("due_at < %s", d.TimeValue(now))
	}

	return Query{
		Where:   strings.Join(b.conds, " AND "),
		Args:    b.args,
		OrderBy: orderBy(f),
	}
}

// orderBy renders the ordering specification.
//
// For due_at and estimated_minutes sorts the ordering is three-tiered:
// completion status first (open tasks before done ones), then the requested
// key in the requested direction with NULLs always last, then created_at
// descending as the recency tie-break. The created_at sort is a single key.
// The (col IS NULL) guard makes NULL placement explicit instead of relying
// on the engine's convention (Postgres and SQLite disagree).
func orderBy(f domain.TaskFilter) string {
	dir := "ASC"
	if f.Order == domain.OrderDesc {
		dir = "DESC"
	}

	if f.SortBy == domain.SortCreatedAt {
		return "created_at " + dir
	}

	col := "due_at"
	if f.SortBy == domain.SortEstimatedMinutes {
		col = "estimated_minutes"
	}

	return fmt.Sprintf(
		"(completed_at IS NOT NULL) ASC, (%s IS NULL) ASC, %s %s, created_at DESC",
		col, col, dir,
	)
}

// endOfDay returns 23:59:59.999 of t's calendar day in t's location.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, t.Location())
}
