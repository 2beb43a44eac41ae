package user

import "context"

// PerformanceSummary is one employee's scoring breakdown, visible to the
// employee themself, their manager and admins.
type PerformanceSummary struct {
	EmployeeID          string   `json:"id"`
	Name                string   `json:"name"`
	Department          *string  `json:"department,omitempty"`
	TotalGoals          int      `json:"total_goals"`
	CompletedGoals      int      `json:"completed_goals"`
	InProgressGoals     int      `json:"in_progress_goals"`
	TotalFeedback       int      `json:"total_feedback"`
	AverageRating       *float64 `json:"average_rating,omitempty"`
	GoalCompletionScore float64  `json:"goal_completion_score"`
	OverallScore        int      `json:"overall_score"`
}

type Service interface {
	List(ctx context.Context, callerID string, filter ListFilter) ([]User, error)
	Get(ctx context.Context, callerID string, userID string) (User, error)
	Update(ctx context.Context, callerID string, req UpdateUserRequest) (User, error)
	Deactivate(ctx context.Context, callerID string, userID string) error
	DirectReports(ctx context.Context, callerID string, managerID string) ([]User, error)
	PerformanceSummary(ctx context.Context, callerID string, employeeID string) (PerformanceSummary, error)
}
