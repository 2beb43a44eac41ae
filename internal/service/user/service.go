package user

import (
	"context"
	"fmt"

	"github.com/perftrack/perf-review-backend-go/internal/domain/feedback"
	"github.com/perftrack/perf-review-backend-go/internal/domain/goal"
	"github.com/perftrack/perf-review-backend-go/internal/domain/user"
	"github.com/perftrack/perf-review-backend-go/internal/service/access"
	"github.com/perftrack/perf-review-backend-go/internal/service/scoring"
)

type UserService struct {
	users    user.Repository
	goals    goal.Repository
	feedback feedback.Repository
	access   *access.Evaluator
}

func NewUserService(users user.Repository, goals goal.Repository, fb feedback.Repository, evaluator *access.Evaluator) user.Service {
	return &UserService{
		users:    users,
		goals:    goals,
		feedback: fb,
		access:   evaluator,
	}
}

func (s *UserService) List(ctx context.Context, callerID string, filter user.ListFilter) ([]user.User, error) {
	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	switch {
	case caller.IsAdmin():
		// full directory
	case caller.Role == user.RoleManager:
		filter.ManagerID = &caller.ID
	default:
		self, err := s.users.GetByID(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		return []user.User{self}, nil
	}

	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, callerID string, userID string) (user.User, error) {
	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return user.User{}, err
	}

	ok, err := s.access.CanRead(ctx, caller, userID)
	if err != nil {
		return user.User{}, err
	}
	if !ok {
		return user.User{}, user.ErrAccessDenied
	}

	return s.users.GetByID(ctx, userID)
}

func (s *UserService) Update(ctx context.Context, callerID string, req user.UpdateUserRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}
	if !req.HasFields() {
		return user.User{}, user.ErrNoFieldsToUpdate
	}

	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return user.User{}, err
	}

	if _, err := s.users.GetByID(ctx, req.ID); err != nil {
		return user.User{}, err
	}

	// Non-admins may only touch their own name and department; role,
	// manager assignment and activation are admin territory.
	if !caller.IsAdmin() {
		if caller.ID != req.ID {
			return user.User{}, user.ErrAccessDenied
		}
		if req.Role != nil || req.ManagerID != nil || req.IsActive != nil {
			return user.User{}, user.ErrAdminOnly
		}
	}

	if req.ManagerID != nil && *req.ManagerID != "" {
		if *req.ManagerID == req.ID {
			return user.User{}, user.ErrInvalidManager
		}
		manager, err := s.users.GetByID(ctx, *req.ManagerID)
		if err != nil {
			return user.User{}, user.ErrInvalidManager
		}
		if !manager.CanManageReports() {
			return user.User{}, user.ErrInvalidManager
		}
	}

	if err := s.users.Update(ctx, req); err != nil {
		return user.User{}, fmt.Errorf("update user: %w", err)
	}

	return s.users.GetByID(ctx, req.ID)
}

func (s *UserService) Deactivate(ctx context.Context, callerID string, userID string) error {
	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return err
	}

	if !caller.IsAdmin() {
		return user.ErrAdminOnly
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.users.Deactivate(ctx, userID); err != nil {
		return err
	}
	return nil
}

func (s *UserService) DirectReports(ctx context.Context, callerID string, managerID string) ([]user.User, error) {
	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	// Managers can only list their own reports; admins can list anyone's.
	if !caller.IsAdmin() && caller.ID != managerID {
		return nil, user.ErrAccessDenied
	}
	if !caller.IsManager() {
		return nil, user.ErrManagerAccessRequired
	}

	reports, err := s.users.GetDirectReports(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("list direct reports: %w", err)
	}
	return reports, nil
}

func (s *UserService) PerformanceSummary(ctx context.Context, callerID string, employeeID string) (user.PerformanceSummary, error) {
	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return user.PerformanceSummary{}, err
	}

	ok, err := s.access.CanRead(ctx, caller, employeeID)
	if err != nil {
		return user.PerformanceSummary{}, err
	}
	if !ok {
		return user.PerformanceSummary{}, user.ErrAccessDenied
	}

	subject, err := s.users.GetByID(ctx, employeeID)
	if err != nil {
		return user.PerformanceSummary{}, err
	}

	goals, err := s.goals.List(ctx, goal.ListFilter{EmployeeID: &employeeID})
	if err != nil {
		return user.PerformanceSummary{}, fmt.Errorf("load goals for summary: %w", err)
	}
	records, err := s.feedback.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return user.PerformanceSummary{}, fmt.Errorf("load feedback for summary: %w", err)
	}

	summary := user.PerformanceSummary{
		EmployeeID:          subject.ID,
		Name:                subject.FullName(),
		Department:          subject.Department,
		TotalGoals:          len(goals),
		TotalFeedback:       len(records),
		AverageRating:       scoring.MeanRating(records),
		GoalCompletionScore: scoring.GoalCompletionScore(goals),
		OverallScore:        scoring.OverallScore(goals, records),
	}
	for _, g := range goals {
		switch g.Status {
		case goal.StatusCompleted:
			summary.CompletedGoals++
		case goal.StatusInProgress:
			summary.InProgressGoals++
		}
	}

	return summary, nil
}
