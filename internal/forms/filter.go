package forms

import "github.com/ketchupdev/ketchup/internal/domain"

// ParseTaskFilter validates listing parameters (status, due, sort_by,
// order) into a normalized TaskFilter. Unknown values are field errors;
// absent fields fall back to the documented defaults (due_at ascending).
func ParseTaskFilter(v Values) (domain.TaskFilter, FieldErrors) {
	fe := FieldErrors{}
	var f domain.TaskFilter
	var err error

	if f.Status, err = domain.NewStatusFilter(v.Get("status")); err != nil {
		fe.Add("status", MsgInvalidChoice)
	}
	if f.Due, err = domain.NewDueFilter(v.Get("due")); err != nil {
		fe.Add("due", MsgInvalidChoice)
	}
	if f.SortBy, err = domain.NewSortKey(v.Get("sort_by")); err != nil {
		fe.Add("sort_by", MsgInvalidChoice)
	}
	if f.Order, err = domain.NewSortOrder(v.Get("order")); err != nil {
		fe.Add("order", MsgInvalidChoice)
	}

	if len(fe) > 0 {
		return domain.TaskFilter{}, fe
	}
	return f.Normalized(), nil
}
