package forms

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ketchupdev/ketchup/internal/domain"
	"github.com/ketchupdev/ketchup/internal/ptr"
)

// dueDateLayouts are the accepted due-date spellings, tried in order.
// Date-only input is allowed; there is no upper or lower bound on the date.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDueDate parses a due-date string in any recognized layout.
// Layouts without a zone are interpreted in local time, matching how the
// "today" and "overdue" buckets are computed.
func ParseDueDate(s string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
}

// parseTitle validates the title field into fe under the "title" key.
func parseTitle(v Values, fe FieldErrors) string {
	title, err := domain.NewTitle(v.Get("title"))
	switch {
	case errors.Is(err, domain.ErrTitleRequired):
		fe.Add("title", MsgTitleRequired)
	case errors.Is(err, domain.ErrTitleTooLong):
		fe.Add("title", MsgTitleTooLong)
	}
	return title.String()
}

// parseEstimatedMinutes validates the estimated_minutes field.
// Empty input returns nil; the caller decides whether that means "absent"
// or "clear".
func parseEstimatedMinutes(v Values, fe FieldErrors) *int {
	raw := strings.TrimSpace(v.Get("estimated_minutes"))
	if raw == "" {
		return nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		fe.Add("estimated_minutes", MsgMinutesInteger)
		return nil
	}
	if n < 1 {
		fe.Add("estimated_minutes", MsgMinutesTooLow)
		return nil
	}
	return ptr.To(n)
}

// parseDueAt validates the due_at field. Empty input returns nil.
func parseDueAt(v Values, fe FieldErrors) *time.Time {
	raw := strings.TrimSpace(v.Get("due_at"))
	if raw == "" {
		return nil
	}

	t, err := ParseDueDate(raw)
	if err != nil {
		fe.Add("due_at", MsgInvalidDate)
		return nil
	}
	return ptr.To(t)
}

// parseNote passes the note field through unchanged; empty input returns
// nil. Notes have no length limit.
func parseNote(v Values) *string {
	if raw := v.Get("note"); raw != "" {
		return ptr.To(raw)
	}
	return nil
}

// parseID validates a UUID-valued field.
func parseID(v Values, field string, fe FieldErrors) string {
	raw := strings.TrimSpace(v.Get(field))
	if _, err := uuid.Parse(raw); err != nil {
		fe.Add(field, MsgInvalidID)
		return ""
	}
	return raw
}

// ParseCreateTask validates task-creation input. Omitted optional fields
// stay absent (nil) so column defaults apply.
func ParseCreateTask(v Values) (domain.NewTaskParams, FieldErrors) {
	fe := FieldErrors{}

	p := domain.NewTaskParams{
		Title:            parseTitle(v, fe),
		Note:             parseNote(v),
		EstimatedMinutes: parseEstimatedMinutes(v, fe),
		DueAt:            parseDueAt(v, fe),
	}

	if len(fe) > 0 {
		return domain.NewTaskParams{}, fe
	}
	return p, nil
}

// ParseUpdateTask validates task-update input. The update is a full replace
// of the mutable fields: an empty optional field clears the stored value.
func ParseUpdateTask(v Values) (domain.UpdateTaskParams, FieldErrors) {
	fe := FieldErrors{}

	p := domain.UpdateTaskParams{
		TaskID:           parseID(v, "id", fe),
		Title:            parseTitle(v, fe),
		Note:             parseNote(v),
		EstimatedMinutes: parseEstimatedMinutes(v, fe),
		DueAt:            parseDueAt(v, fe),
	}

	if len(fe) > 0 {
		return domain.UpdateTaskParams{}, fe
	}
	return p, nil
}

// ParseTaskID validates input carrying a single task id (delete, complete,
// per-task queries).
func ParseTaskID(v Values) (string, FieldErrors) {
	fe := FieldErrors{}
	id := parseID(v, "id", fe)
	if len(fe) > 0 {
		return "", fe
	}
	return id, nil
}
