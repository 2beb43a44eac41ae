package feedback

import (
	"context"
	"errors"
	"fmt"

	"github.com/perftrack/perf-review-backend-go/internal/domain/feedback"
	"github.com/perftrack/perf-review-backend-go/internal/domain/user"
	"github.com/perftrack/perf-review-backend-go/internal/service/access"
)

type FeedbackService struct {
	feedback feedback.Repository
	users    user.Repository
	access   *access.Evaluator
}

func NewFeedbackService(repo feedback.Repository, users user.Repository, evaluator *access.Evaluator) feedback.Service {
	return &FeedbackService{
		feedback: repo,
		users:    users,
		access:   evaluator,
	}
}

func (s *FeedbackService) Create(ctx context.Context, callerID string, req feedback.CreateFeedbackRequest) (feedback.Feedback, error) {
	if err := req.Validate(); err != nil {
		return feedback.Feedback{}, err
	}

	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return feedback.Feedback{}, err
	}

	if _, err := s.users.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return feedback.Feedback{}, feedback.ErrEmployeeNotFound
		}
		return feedback.Feedback{}, fmt.Errorf("lookup feedback employee: %w", err)
	}

	// Only managers and admins author feedback, and managers only about
	// people in their scope. A manager rating themselves passes the scope
	// check on purpose.
	ok, err := s.access.CanWrite(ctx, caller, req.EmployeeID, user.PermissionFeedbackCreate)
	if err != nil {
		return feedback.Feedback{}, err
	}
	if !ok {
		return feedback.Feedback{}, feedback.ErrOutsideScope
	}

	feedbackType := req.FeedbackType
	if feedbackType == "" {
		feedbackType = feedback.TypeGeneral
	}

	created, err := s.feedback.Create(ctx, feedback.Feedback{
		EmployeeID:   req.EmployeeID,
		ManagerID:    caller.ID,
		Rating:       req.Rating,
		Comments:     req.Comments,
		FeedbackType: feedbackType,
		IsPrivate:    req.IsPrivate,
	})
	if err != nil {
		return feedback.Feedback{}, fmt.Errorf("create feedback: %w", err)
	}
	return created, nil
}

func (s *FeedbackService) Get(ctx context.Context, callerID string, feedbackID string) (feedback.Feedback, error) {
	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return feedback.Feedback{}, err
	}

	f, err := s.feedback.GetByID(ctx, feedbackID)
	if err != nil {
		return feedback.Feedback{}, err
	}

	// Authors keep read access to their own records even when the subject
	// has moved out of their scope.
	if f.ManagerID == caller.ID {
		return f, nil
	}

	ok, err := s.access.CanRead(ctx, caller, f.EmployeeID)
	if err != nil {
		return feedback.Feedback{}, err
	}
	if !ok {
		return feedback.Feedback{}, user.ErrAccessDenied
	}

	return f, nil
}

func (s *FeedbackService) List(ctx context.Context, callerID string, filter feedback.ListFilter) ([]feedback.Feedback, error) {
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
		if caller.IsManager() {
			filter.AuthorID = &caller.ID
		}
	}

	records, err := s.feedback.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return records, nil
}

func (s *FeedbackService) Update(ctx context.Context, callerID string, req feedback.UpdateFeedbackRequest) (feedback.Feedback, error) {
	if err := req.Validate(); err != nil {
		return feedback.Feedback{}, err
	}
	if !req.HasFields() {
		return feedback.Feedback{}, feedback.ErrNoFieldsToUpdate
	}

	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return feedback.Feedback{}, err
	}

	f, err := s.feedback.GetByID(ctx, req.ID)
	if err != nil {
		return feedback.Feedback{}, err
	}

	// Updates are strictly author-only. Admins who did not write the record
	// may delete it but not rewrite it.
	if f.ManagerID != caller.ID {
		return feedback.Feedback{}, feedback.ErrNotAuthor
	}

	if err := s.feedback.Update(ctx, req); err != nil {
		return feedback.Feedback{}, fmt.Errorf("update feedback: %w", err)
	}

	return s.feedback.GetByID(ctx, req.ID)
}

func (s *FeedbackService) Delete(ctx context.Context, callerID string, feedbackID string) error {
	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return err
	}

	f, err := s.feedback.GetByID(ctx, feedbackID)
	if err != nil {
		return err
	}

	if f.ManagerID != caller.ID && !caller.IsAdmin() {
		return feedback.ErrNotAuthor
	}

	if err := s.feedback.Delete(ctx, feedbackID); err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	return nil
}

func (s *FeedbackService) Summarize(ctx context.Context, callerID string, employeeID string) (feedback.Summary, error) {
	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return feedback.Summary{}, err
	}

	if _, err := s.users.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return feedback.Summary{}, feedback.ErrEmployeeNotFound
		}
		return feedback.Summary{}, fmt.Errorf("lookup summary employee: %w", err)
	}

	ok, err := s.access.CanRead(ctx, caller, employeeID)
	if err != nil {
		return feedback.Summary{}, err
	}
	if !ok {
		return feedback.Summary{}, user.ErrAccessDenied
	}

	records, err := s.feedback.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return feedback.Summary{}, fmt.Errorf("load feedback for summary: %w", err)
	}

	summary := feedback.Summary{EmployeeID: employeeID}
	if len(records) == 0 {
		return summary, nil
	}

	var total int
	for _, f := range records {
		total += f.Rating
		switch f.Rating {
		case 5:
			summary.FiveStarCount++
		case 4:
			summary.FourStarCount++
		case 3:
			summary.ThreeStarCount++
		case 2:
			summary.TwoStarCount++
		case 1:
			summary.OneStarCount++
		}

		created := f.CreatedAt
		if summary.FirstFeedback == nil || created.Before(*summary.FirstFeedback) {
			first := created
			summary.FirstFeedback = &first
		}
		if summary.LatestFeedback == nil || created.After(*summary.LatestFeedback) {
			latest := created
			summary.LatestFeedback = &latest
		}
	}

	summary.TotalFeedback = len(records)
	summary.AverageRating = float64(total) / float64(len(records))

	return summary, nil
}
