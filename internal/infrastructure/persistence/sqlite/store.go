// Package sqlite implements the task, pomodoro, and auth repositories on
// SQLite (modernc.org/sqlite, pure Go) for local development and hermetic
// tests.
//
// Timestamps are stored as INTEGER unix milliseconds so predicates and
// ordering are plain integer comparisons, independent of text timestamp
// formats. Minute aggregation is computed in process from scanned rows;
// the repository contract requires it to match the Postgres SQL aggregate
// for identical data, which the shared PomodoroSession.Minutes method
// guarantees.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // database/sql driver

	"github.com/ketchupdev/ketchup/internal/application/auth"
	"github.com/ketchupdev/ketchup/internal/application/pomodoro"
	"github.com/ketchupdev/ketchup/internal/application/task"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Store bundles the per-aggregate repositories over one database handle.
type Store struct {
	db       *sql.DB
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

// Open opens (or creates) a SQLite database and applies migrations.
// A single connection is used: SQLite has one writer anyway, and it keeps
// an in-memory DSN pointing at one database instead of one per pool slot.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &Store{
		db:       db,
		tasks:    &TaskRepository{db: db},
		sessions: &SessionRepository{db: db},
		auth:     &AuthRepository{db: db},
	}, nil
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

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Millisecond-timestamp conversion helpers shared by the repositories.

func ms(t time.Time) int64 {
	return t.UnixMilli()
}

func msPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixMilli()
}

func fromMS(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

func timeFromNull(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := fromMS(v.Int64)
	return &t
}

func intFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func strFromNull(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
