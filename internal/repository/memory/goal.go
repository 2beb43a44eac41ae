package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/perftrack/perf-review-backend-go/internal/domain/goal"
)

type goalRepository struct {
	store *Store
}

func (r *goalRepository) Create(ctx context.Context, g goal.Goal) (goal.Goal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now

	r.store.goals[g.ID] = g
	return g, nil
}

func (r *goalRepository) GetByID(ctx context.Context, id string) (goal.Goal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	g, ok := r.store.goals[id]
	if !ok {
		return goal.Goal{}, goal.ErrGoalNotFound
	}
	return g, nil
}

func (r *goalRepository) List(ctx context.Context, filter goal.ListFilter) ([]goal.Goal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	scope := make(map[string]struct{}, len(filter.EmployeeIDs))
	for _, id := range filter.EmployeeIDs {
		scope[id] = struct{}{}
	}

	var goals []goal.Goal
	for _, g := range r.store.goals {
		if filter.EmployeeID != nil && g.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(g.Status) != *filter.Status {
			continue
		}
		if filter.EmployeeIDs != nil {
			if _, ok := scope[g.EmployeeID]; !ok {
				continue
			}
		}
		goals = append(goals, g)
	}

	sort.Slice(goals, func(i, j int) bool {
		if !goals[i].TargetDate.Equal(goals[j].TargetDate) {
			return goals[i].TargetDate.Before(goals[j].TargetDate)
		}
		return goals[i].CreatedAt.After(goals[j].CreatedAt)
	})
	return goals, nil
}

func (r *goalRepository) Update(ctx context.Context, req goal.UpdateGoalRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	g, ok := r.store.goals[req.ID]
	if !ok {
		return goal.ErrGoalNotFound
	}

	if req.Title != nil {
		g.Title = *req.Title
	}
	if req.Description != nil {
		g.Description = req.Description
	}
	if req.KPIName != nil {
		g.KPIName = *req.KPIName
	}
	if req.TargetValue != nil {
		g.TargetValue = *req.TargetValue
	}
	if req.Unit != nil {
		g.Unit = req.Unit
	}
	if req.Status != nil {
		g.Status = goal.Status(*req.Status)
		if g.Status == goal.StatusCompleted {
			g.CompletedDate = req.CompletedDate
		} else {
			g.CompletedDate = nil
		}
	}
	if req.Priority != nil {
		g.Priority = goal.Priority(*req.Priority)
	}
	if req.TargetDate != nil {
		if d, err := time.Parse("2006-01-02", *req.TargetDate); err == nil {
			g.TargetDate = d
		}
	}
	g.UpdatedAt = time.Now()

	r.store.goals[g.ID] = g
	return nil
}

func (r *goalRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.goals[id]; !ok {
		return goal.ErrGoalNotFound
	}
	delete(r.store.goals, id)
	delete(r.store.progress, id)
	return nil
}

func (r *goalRepository) UpdateProgress(ctx context.Context, goalID string, newValue decimal.Decimal, updatedBy string) (goal.Goal, error) {
	// One critical section covers read, history append and completion
	// stamp, mirroring the transaction the PostgreSQL repository uses.
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	g, ok := r.store.goals[goalID]
	if !ok {
		return goal.Goal{}, goal.ErrGoalNotFound
	}

	now := time.Now()
	if !newValue.Equal(g.CurrentValue) {
		r.store.progress[goalID] = append(r.store.progress[goalID], goal.ProgressEntry{
			ID:            uuid.NewString(),
			GoalID:        goalID,
			PreviousValue: g.CurrentValue,
			NewValue:      newValue,
			UpdatedBy:     updatedBy,
			CreatedAt:     now,
		})
	}

	g.CurrentValue = newValue
	if g.TargetReached(newValue) {
		g.Status = goal.StatusCompleted
		completed := now
		g.CompletedDate = &completed
	}
	g.UpdatedAt = now

	r.store.goals[goalID] = g
	return g, nil
}

func (r *goalRepository) ListProgress(ctx context.Context, goalID string) ([]goal.ProgressEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entries := r.store.progress[goalID]
	// Newest first, matching the PostgreSQL ordering.
	out := make([]goal.ProgressEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out, nil
}
