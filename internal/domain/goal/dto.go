package goal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/perftrack/perf-review-backend-go/internal/pkg/validator"
)

type CreateGoalRequest struct {
	EmployeeID  string          `json:"employee_id"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	KPIName     string          `json:"kpi_name"`
	TargetValue decimal.Decimal `json:"target_value"`
	Unit        *string         `json:"unit,omitempty"`
	Priority    string          `json:"priority,omitempty"`
	StartDate   string          `json:"start_date"`
	TargetDate  string          `json:"target_date"`
}

func (r *CreateGoalRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if validator.IsEmpty(r.KPIName) {
		errs = append(errs, validator.ValidationError{
			Field:   "kpi_name",
			Message: "kpi_name is required",
		})
	}
	if !r.TargetValue.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "target_value",
			Message: "target_value must be greater than zero",
		})
	}
	if r.Priority != "" && !validator.IsValidPriority(r.Priority) {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of low, medium, high",
		})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if _, ok := validator.IsValidDate(r.TargetDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "target_date",
			Message: "target_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateGoalRequest carries an explicit partial update: each present field
// replaces the stored one, absent fields are left untouched.
type UpdateGoalRequest struct {
	ID          string           `json:"-"`
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	KPIName     *string          `json:"kpi_name,omitempty"`
	TargetValue *decimal.Decimal `json:"target_value,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	Status      *string          `json:"status,omitempty"`
	Priority    *string          `json:"priority,omitempty"`
	TargetDate  *string          `json:"target_date,omitempty"`

	// CompletedDate is stamped by the service when Status is set to
	// completed; it is not accepted from the client.
	CompletedDate *time.Time `json:"-"`
}

func (r *UpdateGoalRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not be empty",
		})
	}
	if r.KPIName != nil && validator.IsEmpty(*r.KPIName) {
		errs = append(errs, validator.ValidationError{
			Field:   "kpi_name",
			Message: "kpi_name must not be empty",
		})
	}
	if r.TargetValue != nil && !r.TargetValue.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "target_value",
			Message: "target_value must be greater than zero",
		})
	}
	if r.Status != nil && *r.Status != string(StatusInProgress) && *r.Status != string(StatusCompleted) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be in-progress or completed",
		})
	}
	if r.Priority != nil && !validator.IsValidPriority(*r.Priority) {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of low, medium, high",
		})
	}
	if r.TargetDate != nil {
		if _, ok := validator.IsValidDate(*r.TargetDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "target_date",
				Message: "target_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// HasFields reports whether at least one updatable field is present.
func (r *UpdateGoalRequest) HasFields() bool {
	return r.Title != nil || r.Description != nil || r.KPIName != nil ||
		r.TargetValue != nil || r.Unit != nil || r.Status != nil ||
		r.Priority != nil || r.TargetDate != nil
}

type UpdateProgressRequest struct {
	NewValue decimal.Decimal `json:"new_value"`
}

func (r *UpdateProgressRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.NewValue.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "new_value",
			Message: "new_value must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type GoalResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  *string         `json:"employee_name,omitempty"`
	Department    *string         `json:"department,omitempty"`
	Title         string          `json:"title"`
	Description   *string         `json:"description,omitempty"`
	KPIName       string          `json:"kpi_name"`
	TargetValue   decimal.Decimal `json:"target_value"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	Unit          *string         `json:"unit,omitempty"`
	Priority      Priority        `json:"priority"`
	Status        Status          `json:"status"`
	StartDate     time.Time       `json:"start_date"`
	TargetDate    time.Time       `json:"target_date"`
	CompletedDate *time.Time      `json:"completed_date,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

func ToResponse(g Goal) GoalResponse {
	return GoalResponse{
		ID:            g.ID,
		EmployeeID:    g.EmployeeID,
		EmployeeName:  g.EmployeeName,
		Department:    g.Department,
		Title:         g.Title,
		Description:   g.Description,
		KPIName:       g.KPIName,
		TargetValue:   g.TargetValue,
		CurrentValue:  g.CurrentValue,
		Unit:          g.Unit,
		Priority:      g.Priority,
		Status:        g.Status,
		StartDate:     g.StartDate,
		TargetDate:    g.TargetDate,
		CompletedDate: g.CompletedDate,
		CreatedBy:     g.CreatedBy,
		CreatedAt:     g.CreatedAt,
	}
}

type ProgressEntryResponse struct {
	ID            string          `json:"id"`
	GoalID        string          `json:"goal_id"`
	PreviousValue decimal.Decimal `json:"previous_value"`
	NewValue      decimal.Decimal `json:"new_value"`
	UpdatedBy     string          `json:"updated_by"`
	UpdatedByName *string         `json:"updated_by_name,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func ToProgressResponse(e ProgressEntry) ProgressEntryResponse {
	return ProgressEntryResponse{
		ID:            e.ID,
		GoalID:        e.GoalID,
		PreviousValue: e.PreviousValue,
		NewValue:      e.NewValue,
		UpdatedBy:     e.UpdatedBy,
		UpdatedByName: e.UpdatedByName,
		CreatedAt:     e.CreatedAt,
	}
}
