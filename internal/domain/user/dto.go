package user

import (
	"time"

	"github.com/perftrack/perf-review-backend-go/internal/pkg/validator"
)

type ListFilter struct {
	Role       *string
	Department *string
	IsActive   *bool
	// ManagerID restricts the listing to a manager's direct reports plus the
	// manager themself; populated by the service from the caller's scope.
	ManagerID *string
}

type UpdateUserRequest struct {
	ID         string  `json:"-"`
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Department *string `json:"department,omitempty"`
	ManagerID  *string `json:"manager_id,omitempty"`
	Role       *string `json:"role,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name must not be empty",
		})
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name must not be empty",
		})
	}
	if r.Role != nil && !ValidRole(*r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of employee, manager, admin",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// HasFields reports whether at least one updatable field is present.
func (r *UpdateUserRequest) HasFields() bool {
	return r.FirstName != nil || r.LastName != nil || r.Department != nil ||
		r.ManagerID != nil || r.Role != nil || r.IsActive != nil
}

type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Role        Role       `json:"role"`
	ManagerID   *string    `json:"manager_id,omitempty"`
	ManagerName *string    `json:"manager_name,omitempty"`
	Department  *string    `json:"department,omitempty"`
	HireDate    time.Time  `json:"hire_date"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		ManagerID:   u.ManagerID,
		ManagerName: u.ManagerName,
		Department:  u.Department,
		HireDate:    u.HireDate,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}
