// Package memory provides in-process implementations of the domain
// repositories backed by a single mutex-guarded store. Service tests run
// against it, and it stands in for PostgreSQL when no database is wired.
// The store holds its lock across each read-modify-write, so the atomic
// units the domain repositories promise (progress append plus completion
// stamp) hold here the way a transaction guarantees them in PostgreSQL.
package memory

import (
	"sync"

	"github.com/perftrack/perf-review-backend-go/internal/domain/feedback"
	"github.com/perftrack/perf-review-backend-go/internal/domain/goal"
	"github.com/perftrack/perf-review-backend-go/internal/domain/user"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]user.User
	goals    map[string]goal.Goal
	progress map[string][]goal.ProgressEntry
	feedback map[string]feedback.Feedback
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]user.User),
		goals:    make(map[string]goal.Goal),
		progress: make(map[string][]goal.ProgressEntry),
		feedback: make(map[string]feedback.Feedback),
	}
}

func (s *Store) Users() user.Repository {
	return &userRepository{store: s}
}

func (s *Store) Goals() goal.Repository {
	return &goalRepository{store: s}
}

func (s *Store) Feedback() feedback.Repository {
	return &feedbackRepository{store: s}
}
