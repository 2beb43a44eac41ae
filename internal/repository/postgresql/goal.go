package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/perftrack/perf-review-backend-go/internal/domain/goal"
	"github.com/perftrack/perf-review-backend-go/internal/pkg/database"
)

type goalRepositoryImpl struct {
	db *database.DB
}

func NewGoalRepository(db *database.DB) goal.Repository {
	return &goalRepositoryImpl{db: db}
}

const goalColumns = `
	g.id, g.employee_id, g.title, g.description, g.kpi_name,
	g.target_value, g.current_value, g.unit, g.priority, g.status,
	g.start_date, g.target_date, g.completed_date, g.created_by,
	g.created_at, g.updated_at,
	e.first_name || ' ' || e.last_name AS employee_name,
	e.department
`

func scanGoal(row pgx.Row) (goal.Goal, error) {
	var g goal.Goal
	err := row.Scan(
		&g.ID,
		&g.EmployeeID,
		&g.Title,
		&g.Description,
		&g.KPIName,
		&g.TargetValue,
		&g.CurrentValue,
		&g.Unit,
		&g.Priority,
		&g.Status,
		&g.StartDate,
		&g.TargetDate,
		&g.CompletedDate,
		&g.CreatedBy,
		&g.CreatedAt,
		&g.UpdatedAt,
		&g.EmployeeName,
		&g.Department,
	)
	return g, err
}

// Create implements goal.Repository.
func (r *goalRepositoryImpl) Create(ctx context.Context, newGoal goal.Goal) (goal.Goal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO goals (
			employee_id, title, description, kpi_name, target_value,
			current_value, unit, priority, status, start_date, target_date, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	created := newGoal
	err := q.QueryRow(ctx, query,
		newGoal.EmployeeID,
		newGoal.Title,
		newGoal.Description,
		newGoal.KPIName,
		newGoal.TargetValue,
		newGoal.CurrentValue,
		newGoal.Unit,
		newGoal.Priority,
		newGoal.Status,
		newGoal.StartDate,
		newGoal.TargetDate,
		newGoal.CreatedBy,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return goal.Goal{}, err
	}

	return created, nil
}

// GetByID implements goal.Repository.
func (r *goalRepositoryImpl) GetByID(ctx context.Context, id string) (goal.Goal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + goalColumns + `
		FROM goals g
		JOIN users e ON e.id = g.employee_id
		WHERE g.id = $1
	`

	g, err := scanGoal(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return goal.Goal{}, goal.ErrGoalNotFound
		}
		return goal.Goal{}, err
	}
	return g, nil
}

// List implements goal.Repository.
func (r *goalRepositoryImpl) List(ctx context.Context, filter goal.ListFilter) ([]goal.Goal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + goalColumns + `
		FROM goals g
		JOIN users e ON e.id = g.employee_id
		WHERE ($1::uuid IS NULL OR g.employee_id = $1)
		  AND ($2::text IS NULL OR g.status = $2)
		  AND ($3::uuid[] IS NULL OR g.employee_id = ANY($3))
		ORDER BY g.target_date, g.created_at DESC
	`

	var scope any
	if filter.EmployeeIDs != nil {
		scope = filter.EmployeeIDs
	}

	rows, err := q.Query(ctx, query, filter.EmployeeID, filter.Status, scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []goal.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// Update implements goal.Repository. Absent fields keep their stored value.
// Setting status away from completed clears the completion date.
func (r *goalRepositoryImpl) Update(ctx context.Context, req goal.UpdateGoalRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE goals
		SET title          = COALESCE($2, title),
			description    = CASE WHEN $3::boolean THEN $4 ELSE description END,
			kpi_name       = COALESCE($5, kpi_name),
			target_value   = COALESCE($6, target_value),
			unit           = CASE WHEN $7::boolean THEN $8 ELSE unit END,
			priority       = COALESCE($9, priority),
			status         = COALESCE($10, status),
			target_date    = COALESCE($11::date, target_date),
			completed_date = CASE
				WHEN $10::text IS NULL THEN completed_date
				WHEN $10 = 'completed' THEN $12
				ELSE NULL
			END,
			updated_at     = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		req.ID,
		req.Title,
		req.Description != nil,
		req.Description,
		req.KPIName,
		req.TargetValue,
		req.Unit != nil,
		req.Unit,
		req.Priority,
		req.Status,
		req.TargetDate,
		req.CompletedDate,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return goal.ErrGoalNotFound
	}
	return nil
}

// Delete implements goal.Repository. Progress history rows go with the goal
// via ON DELETE CASCADE.
func (r *goalRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return goal.ErrGoalNotFound
	}
	return nil
}

// UpdateProgress implements goal.Repository. The row lock serializes
// concurrent updates so each history entry records the previous value its
// writer actually observed.
func (r *goalRepositoryImpl) UpdateProgress(ctx context.Context, goalID string, newValue decimal.Decimal, updatedBy string) (goal.Goal, error) {
	var updated goal.Goal

	err := WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var current, target decimal.Decimal
		var status goal.Status
		err := tx.QueryRow(ctx,
			`SELECT current_value, target_value, status FROM goals WHERE id = $1 FOR UPDATE`,
			goalID,
		).Scan(&current, &target, &status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return goal.ErrGoalNotFound
			}
			return err
		}

		if !newValue.Equal(current) {
			_, err = tx.Exec(ctx,
				`INSERT INTO goal_progress_history (goal_id, previous_value, new_value, updated_by)
				 VALUES ($1, $2, $3, $4)`,
				goalID, current, newValue, updatedBy,
			)
			if err != nil {
				return err
			}
		}

		var completedDate *time.Time
		if newValue.GreaterThanOrEqual(target) {
			status = goal.StatusCompleted
			now := time.Now()
			completedDate = &now
		}

		_, err = tx.Exec(ctx,
			`UPDATE goals
			 SET current_value = $2,
				 status = $3,
				 completed_date = COALESCE($4, completed_date),
				 updated_at = NOW()
			 WHERE id = $1`,
			goalID, newValue, status, completedDate,
		)
		return err
	})
	if err != nil {
		return goal.Goal{}, err
	}

	updated, err = r.GetByID(ctx, goalID)
	if err != nil {
		return goal.Goal{}, err
	}
	return updated, nil
}

// ListProgress implements goal.Repository. Newest entries come first.
func (r *goalRepositoryImpl) ListProgress(ctx context.Context, goalID string) ([]goal.ProgressEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT h.id, h.goal_id, h.previous_value, h.new_value, h.updated_by, h.created_at,
			   u.first_name || ' ' || u.last_name AS updated_by_name
		FROM goal_progress_history h
		JOIN users u ON u.id = h.updated_by
		WHERE h.goal_id = $1
		ORDER BY h.created_at DESC
	`

	rows, err := q.Query(ctx, query, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []goal.ProgressEntry
	for rows.Next() {
		var e goal.ProgressEntry
		err := rows.Scan(
			&e.ID,
			&e.GoalID,
			&e.PreviousValue,
			&e.NewValue,
			&e.UpdatedBy,
			&e.CreatedAt,
			&e.UpdatedByName,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
