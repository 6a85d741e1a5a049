package forms

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ketchupdev/ketchup/internal/domain"
)

func TestParseTaskFilter(t *testing.T) {
	t.Run("empty input yields defaults", func(t *testing.T) {
		f, fe := ParseTaskFilter(Values{})
		require.Nil(t, fe)
		assert.Equal(t, domain.StatusAny, f.Status)
		assert.Equal(t, domain.DueAll, f.Due)
		assert.Equal(t, domain.SortDueAt, f.SortBy)
		assert.Equal(t, domain.OrderAsc, f.Order)
	})

	t.Run("explicit values", func(t *testing.T) {
		f, fe := ParseTaskFilter(Values{
			"status":  "todo",
			"due":     "overdue",
			"sort_by": "estimated_minutes",
			"order":   "desc",
		})
		require.Nil(t, fe)
		assert.Equal(t, domain.StatusTodo, f.Status)
		assert.Equal(t, domain.DueOverdue, f.Due)
		assert.Equal(t, domain.SortEstimatedMinutes, f.SortBy)
		assert.Equal(t, domain.OrderDesc, f.Order)
	})

	t.Run("camel-case spellings accepted", func(t *testing.T) {
		f, fe := ParseTaskFilter(Values{"due": "withDue", "sort_by": "createdAt"})
		require.Nil(t, fe)
		assert.Equal(t, domain.DueWithDate, f.Due)
		assert.Equal(t, domain.SortCreatedAt, f.SortBy)
	})

	t.Run("unknown values are field errors", func(t *testing.T) {
		_, fe := ParseTaskFilter(Values{
			"status": "archived",
			"due":    "someday",
			"order":  "sideways",
		})
		require.NotNil(t, fe)
		assert.Equal(t, []string{MsgInvalidChoice}, fe["status"])
		assert.Equal(t, []string{MsgInvalidChoice}, fe["due"])
		assert.Equal(t, []string{MsgInvalidChoice}, fe["order"])
		assert.NotContains(t, fe, "sort_by")
	})
}

func TestFromURLValues(t *testing.T) {
	v := FromURLValues(url.Values{
		"status": {"todo", "done"},
		"due":    {"today"},
	})
	assert.Equal(t, "todo", v.Get("status"), "first value wins")
	assert.Equal(t, "today", v.Get("due"))
	assert.Equal(t, "", v.Get("missing"))
}
