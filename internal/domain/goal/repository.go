package goal

import (
	"context"

	"github.com/shopspring/decimal"
)

type ListFilter struct {
	EmployeeID *string
	Status     *string
	// EmployeeIDs restricts results to a caller's visible scope; nil means
	// no scope restriction (admin).
	EmployeeIDs []string
}

// Repository - interface for the goals and goal_progress_history tables
type Repository interface {
	Create(ctx context.Context, g Goal) (Goal, error)
	GetByID(ctx context.Context, id string) (Goal, error)
	List(ctx context.Context, filter ListFilter) ([]Goal, error)
	Update(ctx context.Context, req UpdateGoalRequest) error
	Delete(ctx context.Context, id string) error

	// UpdateProgress applies one atomic unit: re-reads the goal's current
	// value under a per-record lock, appends a history entry when newValue
	// differs, and stamps status/completed_date when the target is reached.
	// Concurrent updates to the same goal serialize; each writer records
	// the previous value it actually observed.
	UpdateProgress(ctx context.Context, goalID string, newValue decimal.Decimal, updatedBy string) (Goal, error)

	ListProgress(ctx context.Context, goalID string) ([]ProgressEntry, error)
}
