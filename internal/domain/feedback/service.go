package feedback

import "context"

// Service - feedback ledger operations. Every method takes the authenticated
// caller's user ID as its first argument; authorization is enforced inside.
type Service interface {
	Create(ctx context.Context, callerID string, req CreateFeedbackRequest) (Feedback, error)
	Get(ctx context.Context, callerID string, feedbackID string) (Feedback, error)
	List(ctx context.Context, callerID string, filter ListFilter) ([]Feedback, error)
	Update(ctx context.Context, callerID string, req UpdateFeedbackRequest) (Feedback, error)
	Delete(ctx context.Context, callerID string, feedbackID string) error
	Summarize(ctx context.Context, callerID string, employeeID string) (Summary, error)
}
