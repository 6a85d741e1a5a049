package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ketchupdev/ketchup/internal/http/middleware"
)

// NewRouter wires the full route table and middleware chain. All /api
// routes run behind token authentication and the body limit; /health does
// not.
func NewRouter(s *Server, validator middleware.TokenValidator) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.LogRequests)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(validator))
		r.Use(middleware.LimitBody)

		r.Route("/api", func(r chi.Router) {
			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", s.ListTasks)
				r.Post("/", s.CreateTask)

				r.Route("/{id}", func(r chi.Router) {
					r.Put("/", s.UpdateTask)
					r.Delete("/", s.DeleteTask)
					r.Post("/complete", s.CompleteTask)

					r.Post("/sessions", s.StartSession)
					r.Get("/sessions/active", s.ActiveSession)
					r.Get("/minutes", s.TaskMinutes)
				})
			})

			r.Post("/sessions/{id}/stop", s.StopSession)
			r.Get("/minutes", s.AllTaskMinutes)
		})
	})

	return r
}
