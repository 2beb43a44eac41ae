package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/perftrack/perf-review-backend-go/internal/domain/feedback"
	"github.com/perftrack/perf-review-backend-go/internal/pkg/database"
)

type feedbackRepositoryImpl struct {
	db *database.DB
}

func NewFeedbackRepository(db *database.DB) feedback.Repository {
	return &feedbackRepositoryImpl{db: db}
}

const feedbackColumns = `
	f.id, f.employee_id, f.manager_id, f.rating, f.comments,
	f.feedback_type, f.is_private, f.created_at, f.updated_at,
	e.first_name || ' ' || e.last_name AS employee_name,
	e.department,
	m.first_name || ' ' || m.last_name AS manager_name
`

func scanFeedback(row pgx.Row) (feedback.Feedback, error) {
	var f feedback.Feedback
	err := row.Scan(
		&f.ID,
		&f.EmployeeID,
		&f.ManagerID,
		&f.Rating,
		&f.Comments,
		&f.FeedbackType,
		&f.IsPrivate,
		&f.CreatedAt,
		&f.UpdatedAt,
		&f.EmployeeName,
		&f.EmployeeDepartment,
		&f.ManagerName,
	)
	return f, err
}

// Create implements feedback.Repository.
func (r *feedbackRepositoryImpl) Create(ctx context.Context, newFeedback feedback.Feedback) (feedback.Feedback, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO feedback (employee_id, manager_id, rating, comments, feedback_type, is_private)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	created := newFeedback
	err := q.QueryRow(ctx, query,
		newFeedback.EmployeeID,
		newFeedback.ManagerID,
		newFeedback.Rating,
		newFeedback.Comments,
		newFeedback.FeedbackType,
		newFeedback.IsPrivate,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return feedback.Feedback{}, err
	}

	return created, nil
}

// GetByID implements feedback.Repository.
func (r *feedbackRepositoryImpl) GetByID(ctx context.Context, id string) (feedback.Feedback, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + feedbackColumns + `
		FROM feedback f
		JOIN users e ON e.id = f.employee_id
		JOIN users m ON m.id = f.manager_id
		WHERE f.id = $1
	`

	f, err := scanFeedback(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return feedback.Feedback{}, feedback.ErrFeedbackNotFound
		}
		return feedback.Feedback{}, err
	}
	return f, nil
}

// List implements feedback.Repository. A scope restriction and an author
// restriction combine with OR, so an author keeps seeing records they
// wrote about subjects outside their current scope.
func (r *feedbackRepositoryImpl) List(ctx context.Context, filter feedback.ListFilter) ([]feedback.Feedback, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + feedbackColumns + `
		FROM feedback f
		JOIN users e ON e.id = f.employee_id
		JOIN users m ON m.id = f.manager_id
		WHERE ($1::uuid IS NULL OR f.employee_id = $1)
		  AND ($2::text IS NULL OR f.feedback_type = $2)
		  AND (
			($3::uuid[] IS NULL AND $4::uuid IS NULL)
			OR f.employee_id = ANY(COALESCE($3, '{}'::uuid[]))
			OR f.manager_id = $4
		  )
		ORDER BY f.created_at DESC
	`

	var scope any
	if filter.EmployeeIDs != nil {
		scope = filter.EmployeeIDs
	}

	rows, err := q.Query(ctx, query, filter.EmployeeID, filter.FeedbackType, scope, filter.AuthorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []feedback.Feedback
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, f)
	}
	return records, rows.Err()
}

// Update implements feedback.Repository. Absent fields keep their stored
// value; employee_id and manager_id are immutable.
func (r *feedbackRepositoryImpl) Update(ctx context.Context, req feedback.UpdateFeedbackRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE feedback
		SET rating        = COALESCE($2, rating),
			comments      = COALESCE($3, comments),
			feedback_type = COALESCE($4, feedback_type),
			is_private    = COALESCE($5, is_private),
			updated_at    = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, req.ID, req.Rating, req.Comments, req.FeedbackType, req.IsPrivate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return feedback.ErrFeedbackNotFound
	}
	return nil
}

// Delete implements feedback.Repository.
func (r *feedbackRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return feedback.ErrFeedbackNotFound
	}
	return nil
}

// GetByEmployeeID implements feedback.Repository.
func (r *feedbackRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) ([]feedback.Feedback, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + feedbackColumns + `
		FROM feedback f
		JOIN users e ON e.id = f.employee_id
		JOIN users m ON m.id = f.manager_id
		WHERE f.employee_id = $1
		ORDER BY f.created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []feedback.Feedback
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, f)
	}
	return records, rows.Err()
}
