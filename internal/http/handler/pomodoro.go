package handler

import (
	"net/http"

	"github.com/ketchupdev/ketchup/internal/forms"
	"github.com/ketchupdev/ketchup/internal/http/response"
)

// StartSession handles POST /api/tasks/{id}/sessions.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	v := withURLParam(r, forms.Values{}, "id", "task_id")

	res := s.actions.StartSession(r.Context(), v)
	if !res.Success {
		response.WriteFailure(w, res.Errors, res.Values)
		return
	}
	response.JSON(w, http.StatusCreated, toSessionDTO(res.Session))
}

// StopSession handles POST /api/sessions/{id}/stop.
func (s *Server) StopSession(w http.ResponseWriter, r *http.Request) {
	v := withURLParam(r, forms.Values{}, "id", "session_id")

	res := s.actions.StopSession(r.Context(), v)
	if !res.Success {
		response.WriteFailure(w, res.Errors, res.Values)
		return
	}
	response.JSON(w, http.StatusOK, toSessionDTO(res.Session))
}

// ActiveSession handles GET /api/tasks/{id}/sessions/active. A null session
// in the body means nothing is running.
func (s *Server) ActiveSession(w http.ResponseWriter, r *http.Request) {
	v := withURLParam(r, forms.Values{}, "id", "task_id")

	res := s.actions.ActiveSession(r.Context(), v)
	if !res.Success {
		response.WriteFailure(w, res.Errors, res.Values)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"session": toSessionDTO(res.Session)})
}

// TaskMinutes handles GET /api/tasks/{id}/minutes.
func (s *Server) TaskMinutes(w http.ResponseWriter, r *http.Request) {
	v := withURLParam(r, forms.Values{}, "id", "id")

	res := s.actions.TaskMinutes(r.Context(), v)
	if !res.Success {
		response.WriteFailure(w, res.Errors, res.Values)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"minutes": res.Minutes})
}

// AllTaskMinutes handles GET /api/minutes, focused minutes keyed by task id.
func (s *Server) AllTaskMinutes(w http.ResponseWriter, r *http.Request) {
	res := s.actions.AllTaskMinutes(r.Context())
	if !res.Success {
		response.WriteFailure(w, res.Errors, nil)
		return
	}
	if res.Minutes == nil {
		res.Minutes = map[string]int{}
	}
	response.JSON(w, http.StatusOK, map[string]any{"minutes": res.Minutes})
}
