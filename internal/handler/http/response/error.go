package response

import (
	"errors"
	"net/http"

	"github.com/perftrack/perf-review-backend-go/internal/domain/auth"
	"github.com/perftrack/perf-review-backend-go/internal/domain/feedback"
	"github.com/perftrack/perf-review-backend-go/internal/domain/goal"
	"github.com/perftrack/perf-review-backend-go/internal/domain/user"
	"github.com/perftrack/perf-review-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrWrongPassword):
		Unauthorized(w, "Current password is incorrect")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserAlreadyInactive):
		Conflict(w, "User is already inactive")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, user.ErrInvalidManager):
		BadRequest(w, "Referenced manager does not exist or cannot manage reports", nil)
	case errors.Is(err, user.ErrAccessDenied):
		Forbidden(w, "Access denied")
	case errors.Is(err, user.ErrAdminOnly):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrNoFieldsToUpdate):
		BadRequest(w, "No fields to update", nil)

	// Goal domain errors
	case errors.Is(err, goal.ErrGoalNotFound):
		NotFound(w, "Goal not found")
	case errors.Is(err, goal.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, goal.ErrNoFieldsToUpdate):
		BadRequest(w, "No fields to update", nil)

	// Feedback domain errors
	case errors.Is(err, feedback.ErrFeedbackNotFound):
		NotFound(w, "Feedback not found")
	case errors.Is(err, feedback.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, feedback.ErrNotAuthor):
		Forbidden(w, "Only the original author may modify this feedback")
	case errors.Is(err, feedback.ErrOutsideScope):
		Forbidden(w, "Can only provide feedback to direct reports")
	case errors.Is(err, feedback.ErrNoFieldsToUpdate):
		BadRequest(w, "No fields to update", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
