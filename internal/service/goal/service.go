package goal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/perftrack/perf-review-backend-go/internal/domain/goal"
	"github.com/perftrack/perf-review-backend-go/internal/domain/user"
	"github.com/perftrack/perf-review-backend-go/internal/pkg/validator"
	"github.com/perftrack/perf-review-backend-go/internal/service/access"
)

type GoalService struct {
	goals  goal.Repository
	users  user.Repository
	access *access.Evaluator
}

func NewGoalService(goals goal.Repository, users user.Repository, evaluator *access.Evaluator) goal.Service {
	return &GoalService{
		goals:  goals,
		users:  users,
		access: evaluator,
	}
}

func (s *GoalService) Create(ctx context.Context, callerID string, req goal.CreateGoalRequest) (goal.Goal, error) {
	if err := req.Validate(); err != nil {
		return goal.Goal{}, err
	}

	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return goal.Goal{}, err
	}

	// Employees always create for themselves; managers and admins must name
	// the target employee.
	employeeID := req.EmployeeID
	if caller.Role == user.RoleEmployee {
		employeeID = caller.ID
	} else if employeeID == "" {
		return goal.Goal{}, validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id is required for managers and admins",
		}}
	}

	if _, err := s.users.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return goal.Goal{}, goal.ErrEmployeeNotFound
		}
		return goal.Goal{}, fmt.Errorf("lookup goal employee: %w", err)
	}

	ok, err := s.access.CanWrite(ctx, caller, employeeID, user.PermissionGoalCreate)
	if err != nil {
		return goal.Goal{}, err
	}
	if !ok {
		return goal.Goal{}, user.ErrAccessDenied
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	targetDate, _ := validator.IsValidDate(req.TargetDate)

	priority := goal.PriorityMedium
	if req.Priority != "" {
		priority = goal.Priority(req.Priority)
	}

	created, err := s.goals.Create(ctx, goal.Goal{
		EmployeeID:   employeeID,
		Title:        req.Title,
		Description:  req.Description,
		KPIName:      req.KPIName,
		TargetValue:  req.TargetValue,
		CurrentValue: decimal.Zero,
		Unit:         req.Unit,
		Priority:     priority,
		Status:       goal.StatusInProgress,
		StartDate:    startDate,
		TargetDate:   targetDate,
		CreatedBy:    caller.ID,
	})
	if err != nil {
		return goal.Goal{}, fmt.Errorf("create goal: %w", err)
	}

	return created, nil
}

func (s *GoalService) Get(ctx context.Context, callerID string, goalID string) (goal.Goal, error) {
	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return goal.Goal{}, err
	}

	g, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return goal.Goal{}, err
	}

	ok, err := s.access.CanRead(ctx, caller, g.EmployeeID)
	if err != nil {
		return goal.Goal{}, err
	}
	if !ok {
		return goal.Goal{}, user.ErrAccessDenied
	}

	return g, nil
}

func (s *GoalService) List(ctx context.Context, callerID string, filter goal.ListFilter) ([]goal.Goal, error) {
	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	ids, all, err := s.access.VisibleScope(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !all {
		filter.EmployeeIDs = ids
	}

	goals, err := s.goals.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (s *GoalService) Update(ctx context.Context, callerID string, req goal.UpdateGoalRequest) (goal.Goal, error) {
	if err := req.Validate(); err != nil {
		return goal.Goal{}, err
	}
	if !req.HasFields() {
		return goal.Goal{}, goal.ErrNoFieldsToUpdate
	}

	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return goal.Goal{}, err
	}

	g, err := s.goals.GetByID(ctx, req.ID)
	if err != nil {
		return goal.Goal{}, err
	}

	ok, err := s.access.CanWrite(ctx, caller, g.EmployeeID, user.PermissionGoalUpdate)
	if err != nil {
		return goal.Goal{}, err
	}
	if !ok {
		return goal.Goal{}, user.ErrAccessDenied
	}

	// An explicit completed status stamps the completion date; editing back
	// to in-progress reopens the goal and clears it. History stays intact
	// either way.
	if req.Status != nil && *req.Status == string(goal.StatusCompleted) {
		now := time.Now()
		req.CompletedDate = &now
	}

	if err := s.goals.Update(ctx, req); err != nil {
		return goal.Goal{}, fmt.Errorf("update goal: %w", err)
	}

	return s.goals.GetByID(ctx, req.ID)
}

func (s *GoalService) UpdateProgress(ctx context.Context, callerID string, goalID string, req goal.UpdateProgressRequest) (goal.Goal, error) {
	if err := req.Validate(); err != nil {
		return goal.Goal{}, err
	}

	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return goal.Goal{}, err
	}

	g, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return goal.Goal{}, err
	}

	ok, err := s.access.CanWrite(ctx, caller, g.EmployeeID, user.PermissionGoalUpdate)
	if err != nil {
		return goal.Goal{}, err
	}
	if !ok {
		return goal.Goal{}, user.ErrAccessDenied
	}

	// The repository applies the value change, the history append and the
	// auto-completion as one atomic unit.
	updated, err := s.goals.UpdateProgress(ctx, goalID, req.NewValue, caller.ID)
	if err != nil {
		return goal.Goal{}, fmt.Errorf("update goal progress: %w", err)
	}
	return updated, nil
}

func (s *GoalService) Delete(ctx context.Context, callerID string, goalID string) error {
	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return err
	}

	// Employees can never delete goals, not even their own.
	if !caller.IsManager() {
		return user.ErrManagerAccessRequired
	}

	g, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return err
	}

	ok, err := s.access.CanWrite(ctx, caller, g.EmployeeID, user.PermissionGoalDelete)
	if err != nil {
		return err
	}
	if !ok {
		return user.ErrAccessDenied
	}

	if err := s.goals.Delete(ctx, goalID); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

func (s *GoalService) ProgressHistory(ctx context.Context, callerID string, goalID string) ([]goal.ProgressEntry, error) {
	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	g, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	ok, err := s.access.CanRead(ctx, caller, g.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, user.ErrAccessDenied
	}

	entries, err := s.goals.ListProgress(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("list goal progress: %w", err)
	}
	return entries, nil
}
