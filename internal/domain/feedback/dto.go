package feedback

import (
	"time"

	"github.com/perftrack/perf-review-backend-go/internal/pkg/validator"
)

type CreateFeedbackRequest struct {
	EmployeeID   string `json:"employee_id"`
	Rating       int    `json:"rating"`
	Comments     string `json:"comments"`
	FeedbackType string `json:"feedback_type,omitempty"`
	IsPrivate    bool   `json:"is_private,omitempty"`
}

func (r *CreateFeedbackRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if !validator.IsValidRating(r.Rating) {
		errs = append(errs, validator.ValidationError{
			Field:   "rating",
			Message: "rating must be between 1 and 5",
		})
	}
	if validator.IsEmpty(r.Comments) {
		errs = append(errs, validator.ValidationError{
			Field:   "comments",
			Message: "comments is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateFeedbackRequest struct {
	ID           string  `json:"-"`
	Rating       *int    `json:"rating,omitempty"`
	Comments     *string `json:"comments,omitempty"`
	FeedbackType *string `json:"feedback_type,omitempty"`
	IsPrivate    *bool   `json:"is_private,omitempty"`
}

func (r *UpdateFeedbackRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Rating != nil && !validator.IsValidRating(*r.Rating) {
		errs = append(errs, validator.ValidationError{
			Field:   "rating",
			Message: "rating must be between 1 and 5",
		})
	}
	if r.Comments != nil && validator.IsEmpty(*r.Comments) {
		errs = append(errs, validator.ValidationError{
			Field:   "comments",
			Message: "comments must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// HasFields reports whether at least one updatable field is present.
func (r *UpdateFeedbackRequest) HasFields() bool {
	return r.Rating != nil || r.Comments != nil || r.FeedbackType != nil || r.IsPrivate != nil
}

type FeedbackResponse struct {
	ID                 string    `json:"id"`
	EmployeeID         string    `json:"employee_id"`
	EmployeeName       *string   `json:"employee_name,omitempty"`
	EmployeeDepartment *string   `json:"employee_department,omitempty"`
	ManagerID          string    `json:"manager_id"`
	ManagerName        *string   `json:"manager_name,omitempty"`
	Rating             int       `json:"rating"`
	Comments           string    `json:"comments"`
	FeedbackType       string    `json:"feedback_type"`
	IsPrivate          bool      `json:"is_private"`
	CreatedAt          time.Time `json:"created_at"`
}

func ToResponse(f Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:                 f.ID,
		EmployeeID:         f.EmployeeID,
		EmployeeName:       f.EmployeeName,
		EmployeeDepartment: f.EmployeeDepartment,
		ManagerID:          f.ManagerID,
		ManagerName:        f.ManagerName,
		Rating:             f.Rating,
		Comments:           f.Comments,
		FeedbackType:       f.FeedbackType,
		IsPrivate:          f.IsPrivate,
		CreatedAt:          f.CreatedAt,
	}
}

// Summary aggregates one employee's feedback set: total count, mean rating,
// a per-star histogram and the first/latest feedback timestamps.
type Summary struct {
	EmployeeID     string     `json:"employee_id"`
	TotalFeedback  int        `json:"total_feedback"`
	AverageRating  float64    `json:"average_rating"`
	FiveStarCount  int        `json:"five_star_count"`
	FourStarCount  int        `json:"four_star_count"`
	ThreeStarCount int        `json:"three_star_count"`
	TwoStarCount   int        `json:"two_star_count"`
	OneStarCount   int        `json:"one_star_count"`
	FirstFeedback  *time.Time `json:"first_feedback_date,omitempty"`
	LatestFeedback *time.Time `json:"latest_feedback_date,omitempty"`
}
