// Package response writes the JSON envelopes the API returns and maps
// action failures to HTTP status codes.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"

	"github.com/ketchupdev/ketchup/internal/application/actions"
	"github.com/ketchupdev/ketchup/internal/forms"
)

// ErrorPayload is the failure half of the envelope.
type ErrorPayload struct {
	Fields map[string][]string `json:"fields,omitempty"`
	Form   []string            `json:"form,omitempty"`
}

// Failure is the body returned for any unsuccessful action. Values echoes
// the submitted input so form clients can redisplay it.
type Failure struct {
	Errors ErrorPayload `json:"errors"`
	Values forms.Values `json:"values,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Status maps an action failure to a status code: missing identity is 401,
// the generic retry message is 500, everything else is a validation 400.
func Status(errs *actions.Errors) int {
	if errs == nil {
		return http.StatusInternalServerError
	}
	if slices.Contains(errs.Form, actions.MsgLoginRequired) {
		return http.StatusUnauthorized
	}
	if slices.Contains(errs.Form, actions.MsgTryAgainLater) {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// WriteFailure writes the failure envelope for an unsuccessful action.
func WriteFailure(w http.ResponseWriter, errs *actions.Errors, values forms.Values) {
	payload := ErrorPayload{}
	if errs != nil {
		payload.Fields = errs.Fields
		payload.Form = errs.Form
	}
	JSON(w, Status(errs), Failure{Errors: payload, Values: values})
}
