package user

import "context"

// Repository - interface for the users table
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, filter ListFilter) ([]User, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	Deactivate(ctx context.Context, id string) error
	// GetDirectReports returns the users whose manager_id equals managerID.
	// The manager relation is a single-level adjacency, never a tree walk.
	GetDirectReports(ctx context.Context, managerID string) ([]User, error)
}
