package taskquery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ketchupdev/ketchup/internal/domain"
)

const owner = "owner-1"

func TestBuildDefaultFilter(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	q := Build(Postgres{}, owner, domain.TaskFilter{}, now)
	assert.Equal(t, "owner_id = $1", q.Where)
	assert.Equal(t, []any{owner}, q.Args)
	assert.Equal(t,
		"(completed_at IS NOT NULL) ASC, (due_at IS NULL) ASC, due_at ASC, created_at DESC",
		q.OrderBy)
}

func TestBuildStatusFilters(t *testing.T) {
	now := time.Now()

	q := Build(Postgres{}, owner, domain.TaskFilter{Status: domain.StatusTodo}, now)
	assert.Equal(t, "owner_id = $1 AND completed_at IS NULL", q.Where)

	q = Build(Postgres{}, owner, domain.TaskFilter{Status: domain.StatusDone}, now)
	assert.Equal(t, "owner_id = $1 AND completed_at IS NOT NULL", q.Where)
}

func TestBuildDueBuckets(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

	t.Run("with date", func(t *testing.T) {
		q := Build(Postgres{}, owner, domain.TaskFilter{Due: domain.DueWithDate}, now)
		assert.Equal(t, "owner_id = $1 AND due_at IS NOT NULL", q.Where)
	})

	t.Run("without date", func(t *testing.T) {
		q := Build(Postgres{}, owner, domain.TaskFilter{Due: domain.DueWithoutDate}, now)
		assert.Equal(t, "owner_id = $1 AND due_at IS NULL", q.Where)
	})

	t.Run("today cuts off at end of day and excludes done", func(t *testing.T) {
		q := Build(Postgres{}, owner, domain.TaskFilter{Due: domain.DueToday}, now)
		assert.Equal(t,
			"owner_id = $1 AND completed_at IS NULL AND due_at IS NOT NULL AND due_at <= $2",
			q.Where)
		require.Len(t, q.Args, 2)
		cutoff, ok := q.Args[1].(time.Time)
		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 3, 1, 23, 59, 59, 999_000_000, time.UTC), cutoff)
	})

	t.Run("overdue is strictly before now and excludes done", func(t *testing.T) {
		q := Build(Postgres{}, owner, domain.TaskFilter{Due: domain.DueOverdue}, now)
		assert.Equal(t,
			"owner_id = $1 AND completed_at IS NULL AND due_at IS NOT NULL AND due_at < $2",
			q.Where)
		require.Len(t, q.Args, 2)
		assert.Equal(t, now, q.Args[1])
	})
}

func TestBuildDedupesIncompleteCondition(t *testing.T) {
	// status=todo and due=today both require an open task; the predicate
	// must contain completed_at IS NULL exactly once.
	q := Build(Postgres{}, owner, domain.TaskFilter{
		Status: domain.StatusTodo,
		Due:    domain.DueToday,
	}, time.Now())

	assert.Equal(t,
		"owner_id = $1 AND completed_at IS NULL AND due_at IS NOT NULL AND due_at <= $2",
		q.Where)
}

func TestBuildOrdering(t *testing.T) {
	now := time.Now()

	t.Run("created_at is a single key", func(t *testing.T) {
		q := Build(Postgres{}, owner, domain.TaskFilter{SortBy: domain.SortCreatedAt, Order: domain.OrderDesc}, now)
		assert.Equal(t, "created_at DESC", q.OrderBy)

		q = Build(Postgres{}, owner, domain.TaskFilter{SortBy: domain.SortCreatedAt}, now)
		assert.Equal(t, "created_at ASC", q.OrderBy)
	})

	t.Run("estimated_minutes keeps the three tiers", func(t *testing.T) {
		q := Build(Postgres{}, owner, domain.TaskFilter{SortBy: domain.SortEstimatedMinutes, Order: domain.OrderDesc}, now)
		assert.Equal(t,
			"(completed_at IS NOT NULL) ASC, (estimated_minutes IS NULL) ASC, estimated_minutes DESC, created_at DESC",
			q.OrderBy)
	})

	t.Run("direction flips only the sort key", func(t *testing.T) {
		q := Build(Postgres{}, owner, domain.TaskFilter{SortBy: domain.SortDueAt, Order: domain.OrderDesc}, now)
		assert.Equal(t,
			"(completed_at IS NOT NULL) ASC, (due_at IS NULL) ASC, due_at DESC, created_at DESC",
			q.OrderBy)
	})
}

func TestBuildSQLiteDialect(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

	q := Build(SQLite{}, owner, domain.TaskFilter{Due: domain.DueOverdue}, now)
	assert.Equal(t,
		"owner_id = ? AND completed_at IS NULL AND due_at IS NOT NULL AND due_at < ?",
		q.Where)
	require.Len(t, q.Args, 2)
	assert.Equal(t, now.UnixMilli(), q.Args[1], "timestamps bind as unix milliseconds")
}

func TestEndOfDayKeepsLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 22, 15, 0, 0, loc)
	eod := endOfDay(now)
	assert.Equal(t, time.Date(2026, 3, 1, 23, 59, 59, 999_000_000, loc), eod)
	assert.Equal(t, loc, eod.Location())
}
