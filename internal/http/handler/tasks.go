package handler

import (
	"net/http"

	"github.com/ketchupdev/ketchup/internal/application/auth"
	"github.com/ketchupdev/ketchup/internal/forms"
	"github.com/ketchupdev/ketchup/internal/http/response"
)

// CreateTask handles POST /api/tasks.
func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	v, err := formValues(r)
	if err != nil {
		writeBadForm(w, err.Error())
		return
	}

	res := s.actions.CreateTask(r.Context(), v)
	if !res.Success {
		response.WriteFailure(w, res.Errors, res.Values)
		return
	}
	response.JSON(w, http.StatusCreated, toTaskDTO(res.Task))
}

// ListTasks handles GET /api/tasks. The owner's view version doubles as a
// weak ETag: a matching If-None-Match short-circuits to 304 before any
// database work.
func (s *Server) ListTasks(w http.ResponseWriter, r *http.Request) {
	if owner, ok := auth.UserIDFromContext(r.Context()); ok {
		etag := s.views.Etag(owner)
		if r.Header.Get("If-None-Match") == etag {
			w.Header().Set("ETag", etag)
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	res := s.actions.ListTasks(r.Context(), queryValues(r))
	if !res.Success {
		response.WriteFailure(w, res.Errors, res.Values)
		return
	}

	if owner, ok := auth.UserIDFromContext(r.Context()); ok {
		w.Header().Set("ETag", s.views.Etag(owner))
	}
	response.JSON(w, http.StatusOK, map[string]any{"tasks": toTaskDTOs(res.Tasks)})
}

// UpdateTask handles PUT /api/tasks/{id}.
func (s *Server) UpdateTask(w http.ResponseWriter, r *http.Request) {
	v, err := formValues(r)
	if err != nil {
		writeBadForm(w, err.Error())
		return
	}
	v = withURLParam(r, v, "id", "id")

	res := s.actions.UpdateTask(r.Context(), v)
	if !res.Success {
		response.WriteFailure(w, res.Errors, res.Values)
		return
	}
	response.JSON(w, http.StatusOK, toTaskDTO(res.Task))
}

// DeleteTask handles DELETE /api/tasks/{id}, returning the deleted task.
func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	v := withURLParam(r, forms.Values{}, "id", "id")

	res := s.actions.DeleteTask(r.Context(), v)
	if !res.Success {
		response.WriteFailure(w, res.Errors, res.Values)
		return
	}
	response.JSON(w, http.StatusOK, toTaskDTO(res.Task))
}

// CompleteTask handles POST /api/tasks/{id}/complete.
func (s *Server) CompleteTask(w http.ResponseWriter, r *http.Request) {
	v := withURLParam(r, forms.Values{}, "id", "id")

	res := s.actions.CompleteTask(r.Context(), v)
	if !res.Success {
		response.WriteFailure(w, res.Errors, res.Values)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
