package goal

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Goal struct {
	ID            string
	EmployeeID    string
	Title         string
	Description   *string
	KPIName       string
	TargetValue   decimal.Decimal
	CurrentValue  decimal.Decimal
	Unit          *string
	Priority      Priority
	Status        Status
	StartDate     time.Time
	TargetDate    time.Time
	CompletedDate *time.Time
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	EmployeeName *string
	Department   *string
}

// IsOverdue reports whether the goal's target date has passed without the
// goal reaching completed status. Overdue is derived, never stored.
func (g *Goal) IsOverdue(now time.Time) bool {
	return g.Status != StatusCompleted && g.TargetDate.Before(now)
}

// TargetReached reports whether value meets or exceeds the goal's target.
func (g *Goal) TargetReached(value decimal.Decimal) bool {
	return value.GreaterThanOrEqual(g.TargetValue)
}

// ProgressEntry is one record of the append-only progress audit trail.
// Entries are never mutated or deleted.
type ProgressEntry struct {
	ID            string
	GoalID        string
	PreviousValue decimal.Decimal
	NewValue      decimal.Decimal
	UpdatedBy     string
	CreatedAt     time.Time

	// DTO / Join
	UpdatedByName *string
}
