package analytics

import "context"

// Service - aggregation and reporting over the caller's visible employee
// scope. All methods require manager or admin role; DepartmentPerformance
// is admin-only.
type Service interface {
	TeamOverview(ctx context.Context, callerID string) (TeamOverview, error)
	PerformanceScores(ctx context.Context, callerID string, department *string) ([]EmployeeScore, error)
	TopPerformers(ctx context.Context, callerID string, limit int) ([]EmployeeScore, error)
	PromotionRecommendations(ctx context.Context, callerID string) ([]PromotionRecommendation, error)
	DepartmentPerformance(ctx context.Context, callerID string) ([]DepartmentPerformance, error)
	GoalTrends(ctx context.Context, callerID string, period string) ([]TrendBucket, error)
	FeedbackDistribution(ctx context.Context, callerID string) ([]RatingBucket, error)
}
