// Package handler exposes the task and pomodoro actions over HTTP. Input
// arrives as form or query parameters, flows through the action layer
// untyped, and comes back as JSON envelopes.
package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ketchupdev/ketchup/internal/application/actions"
	"github.com/ketchupdev/ketchup/internal/application/view"
	"github.com/ketchupdev/ketchup/internal/forms"
	"github.com/ketchupdev/ketchup/internal/http/response"
)

// Server holds the handler dependencies.
type Server struct {
	actions *actions.Actions
	views   *view.Tracker
}

// NewServer creates the handler set.
func NewServer(a *actions.Actions, views *view.Tracker) *Server {
	return &Server{actions: a, views: views}
}

// formValues parses the request body as a form and flattens it. A body the
// MaxBytesReader rejects surfaces here as a parse error.
func formValues(r *http.Request) (forms.Values, error) {
	if err := r.ParseForm(); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errors.New("request body too large")
		}
		return nil, errors.New("malformed form body")
	}
	return forms.FromURLValues(r.PostForm), nil
}

// queryValues flattens the query string.
func queryValues(r *http.Request) forms.Values {
	return forms.FromURLValues(r.URL.Query())
}

// withURLParam copies the named chi route parameter into the values under
// field, so path-addressed ids flow through the same validation as any
// other input.
func withURLParam(r *http.Request, v forms.Values, param, field string) forms.Values {
	if v == nil {
		v = forms.Values{}
	}
	v[field] = chi.URLParam(r, param)
	return v
}

func writeBadForm(w http.ResponseWriter, msg string) {
	response.JSON(w, http.StatusBadRequest, response.Failure{
		Errors: response.ErrorPayload{Form: []string{msg}},
	})
}
