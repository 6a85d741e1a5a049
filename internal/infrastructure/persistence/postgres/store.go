// Package postgres implements the task, pomodoro, and auth repositories on
// PostgreSQL via pgx. Each aggregate gets its own repository type; they
// share one connection pool through the Store.
package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ketchupdev/ketchup/internal/application/auth"
	"github.com/ketchupdev/ketchup/internal/application/pomodoro"
	"github.com/ketchupdev/ketchup/internal/application/task"
)

// Store bundles the per-aggregate repositories over one pool.
type Store struct {
	pool     *pgxpool.Pool
	tasks    *TaskRepository
	sessions *SessionRepository
	auth     *AuthRepository
}

// Compile-time verification of the repository contracts.
var (
	_ task.Repository     = (*TaskRepository)(nil)
	_ pomodoro.Repository = (*SessionRepository)(nil)
	_ auth.Repository     = (*AuthRepository)(nil)
)

// NewStore creates a store on an existing connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:     pool,
		tasks:    &TaskRepository{pool: pool},
		sessions: &SessionRepository{pool: pool},
		auth:     &AuthRepository{pool: pool},
	}
}

// Tasks returns the task repository.
func (s *Store) Tasks() *TaskRepository {
	return s.tasks
}

// Sessions returns the pomodoro session repository.
func (s *Store) Sessions() *SessionRepository {
	return s.sessions
}

// Auth returns the auth session repository.
func (s *Store) Auth() *AuthRepository {
	return s.auth
}

// Pool returns the underlying connection pool.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
