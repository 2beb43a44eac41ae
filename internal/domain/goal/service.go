package goal

import "context"

// Service - goal lifecycle operations. Every method takes the authenticated
// caller's user ID as its first argument; authorization is enforced inside.
type Service interface {
	Create(ctx context.Context, callerID string, req CreateGoalRequest) (Goal, error)
	Get(ctx context.Context, callerID string, goalID string) (Goal, error)
	List(ctx context.Context, callerID string, filter ListFilter) ([]Goal, error)
	Update(ctx context.Context, callerID string, req UpdateGoalRequest) (Goal, error)
	UpdateProgress(ctx context.Context, callerID string, goalID string, req UpdateProgressRequest) (Goal, error)
	Delete(ctx context.Context, callerID string, goalID string) error
	ProgressHistory(ctx context.Context, callerID string, goalID string) ([]ProgressEntry, error)
}
