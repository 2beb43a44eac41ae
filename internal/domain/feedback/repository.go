package feedback

import "context"

type ListFilter struct {
	EmployeeID   *string
	FeedbackType *string
	// EmployeeIDs restricts results to a caller's visible scope; nil means
	// no scope restriction (admin).
	EmployeeIDs []string
	// AuthorID additionally includes records authored by this user, so a
	// manager still sees feedback they wrote about subjects who have since
	// left their scope.
	AuthorID *string
}

// Repository - interface for the feedback table
type Repository interface {
	Create(ctx context.Context, f Feedback) (Feedback, error)
	GetByID(ctx context.Context, id string) (Feedback, error)
	List(ctx context.Context, filter ListFilter) ([]Feedback, error)
	Update(ctx context.Context, req UpdateFeedbackRequest) error
	Delete(ctx context.Context, id string) error
	GetByEmployeeID(ctx context.Context, employeeID string) ([]Feedback, error)
}
