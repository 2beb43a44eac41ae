package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/perftrack/perf-review-backend-go/internal/domain/feedback"
)

type feedbackRepository struct {
	store *Store
}

func (r *feedbackRepository) Create(ctx context.Context, f feedback.Feedback) (feedback.Feedback, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	now := time.Now()
	f.CreatedAt = now
	f.UpdatedAt = now

	r.store.feedback[f.ID] = f
	return f, nil
}

func (r *feedbackRepository) GetByID(ctx context.Context, id string) (feedback.Feedback, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	f, ok := r.store.feedback[id]
	if !ok {
		return feedback.Feedback{}, feedback.ErrFeedbackNotFound
	}
	return f, nil
}

func (r *feedbackRepository) List(ctx context.Context, filter feedback.ListFilter) ([]feedback.Feedback, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	scope := make(map[string]struct{}, len(filter.EmployeeIDs))
	for _, id := range filter.EmployeeIDs {
		scope[id] = struct{}{}
	}

	var records []feedback.Feedback
	for _, f := range r.store.feedback {
		if filter.EmployeeID != nil && f.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.FeedbackType != nil && f.FeedbackType != *filter.FeedbackType {
			continue
		}
		if filter.EmployeeIDs != nil {
			_, inScope := scope[f.EmployeeID]
			authored := filter.AuthorID != nil && f.ManagerID == *filter.AuthorID
			if !inScope && !authored {
				continue
			}
		}
		records = append(records, f)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (r *feedbackRepository) Update(ctx context.Context, req feedback.UpdateFeedbackRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	f, ok := r.store.feedback[req.ID]
	if !ok {
		return feedback.ErrFeedbackNotFound
	}

	if req.Rating != nil {
		f.Rating = *req.Rating
	}
	if req.Comments != nil {
		f.Comments = *req.Comments
	}
	if req.FeedbackType != nil {
		f.FeedbackType = *req.FeedbackType
	}
	if req.IsPrivate != nil {
		f.IsPrivate = *req.IsPrivate
	}
	f.UpdatedAt = time.Now()

	r.store.feedback[f.ID] = f
	return nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.feedback[id]; !ok {
		return feedback.ErrFeedbackNotFound
	}
	delete(r.store.feedback, id)
	return nil
}

func (r *feedbackRepository) GetByEmployeeID(ctx context.Context, employeeID string) ([]feedback.Feedback, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var records []feedback.Feedback
	for _, f := range r.store.feedback {
		if f.EmployeeID == employeeID {
			records = append(records, f)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}
