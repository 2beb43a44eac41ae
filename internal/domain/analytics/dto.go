package analytics

import "time"

// Tier is one of four ordered promotion-readiness labels derived from the
// composite performance score.
type Tier string

const (
	TierHighlyRecommended Tier = "highly-recommended"
	TierRecommended       Tier = "recommended"
	TierConsider          Tier = "consider"
	TierNotReady          Tier = "not-ready"
)

type TeamOverview struct {
	TotalEmployees  int      `json:"total_employees"`
	TotalGoals      int      `json:"total_goals"`
	CompletedGoals  int      `json:"completed_goals"`
	InProgressGoals int      `json:"in_progress_goals"`
	TotalFeedback   int      `json:"total_feedback"`
	AverageRating   *float64 `json:"average_rating,omitempty"`
	OverdueGoals    int      `json:"overdue_goals"`
}

// EmployeeScore is the per-employee output of the scoring pipeline.
type EmployeeScore struct {
	EmployeeID          string   `json:"id"`
	Name                string   `json:"name"`
	Department          *string  `json:"department,omitempty"`
	TotalGoals          int      `json:"total_goals"`
	CompletedGoals      int      `json:"completed_goals"`
	AverageRating       *float64 `json:"average_rating,omitempty"`
	GoalCompletionScore float64  `json:"goal_completion_score"`
	FeedbackScore       float64  `json:"feedback_score"`
	OverallScore        int      `json:"overall_score"`
}

type PromotionRecommendation struct {
	EmployeeScore
	HireDate       time.Time `json:"hire_date"`
	Recommendation Tier      `json:"recommendation"`
}

type DepartmentPerformance struct {
	Department     string   `json:"department"`
	EmployeeCount  int      `json:"employee_count"`
	TotalGoals     int      `json:"total_goals"`
	CompletedGoals int      `json:"completed_goals"`
	CompletionRate float64  `json:"completion_rate"`
	AverageRating  *float64 `json:"average_rating,omitempty"`
}

// TrendBucket counts goals created and completed within one calendar month.
type TrendBucket struct {
	Month          time.Time `json:"month"`
	GoalsCreated   int       `json:"goals_created"`
	GoalsCompleted int       `json:"goals_completed"`
}

type RatingBucket struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}
