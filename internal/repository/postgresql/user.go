package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/perftrack/perf-review-backend-go/internal/domain/user"
	"github.com/perftrack/perf-review-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `
	u.id, u.email, u.password_hash, u.first_name, u.last_name, u.role,
	u.manager_id, u.department, u.hire_date, u.is_active, u.created_at, u.updated_at,
	m.first_name || ' ' || m.last_name AS manager_name
`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.ManagerID,
		&u.Department,
		&u.HireDate,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.ManagerName,
	)
	return u, err
}

// Create implements user.Repository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			email, password_hash, first_name, last_name, role,
			manager_id, department, hire_date, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, email, password_hash, first_name, last_name, role,
				  manager_id, department, hire_date, is_active, created_at, updated_at
	`

	var created user.User
	err := q.QueryRow(ctx, query,
		newUser.Email,
		newUser.PasswordHash,
		newUser.FirstName,
		newUser.LastName,
		newUser.Role,
		newUser.ManagerID,
		newUser.Department,
		newUser.HireDate,
		newUser.IsActive,
	).Scan(
		&created.ID,
		&created.Email,
		&created.PasswordHash,
		&created.FirstName,
		&created.LastName,
		&created.Role,
		&created.ManagerID,
		&created.Department,
		&created.HireDate,
		&created.IsActive,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, err
	}

	return created, nil
}

// GetByID implements user.Repository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN users m ON m.id = u.manager_id
		WHERE u.id = $1
	`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// GetByEmail implements user.Repository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN users m ON m.id = u.manager_id
		WHERE LOWER(u.email) = LOWER($1)
	`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// List implements user.Repository. The optional filters collapse to no-ops
// when their parameter is NULL, keeping the statement static.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.ListFilter) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN users m ON m.id = u.manager_id
		WHERE ($1::text IS NULL OR u.role = $1)
		  AND ($2::text IS NULL OR u.department = $2)
		  AND ($3::boolean IS NULL OR u.is_active = $3)
		  AND ($4::uuid IS NULL OR u.manager_id = $4 OR u.id = $4)
		ORDER BY u.last_name, u.first_name
	`

	rows, err := q.Query(ctx, query, filter.Role, filter.Department, filter.IsActive, filter.ManagerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update implements user.Repository. Absent fields keep their stored value;
// a present manager_id with an empty string clears the assignment.
func (r *userRepositoryImpl) Update(ctx context.Context, req user.UpdateUserRequest) error {
	q := GetQuerier(ctx, r.db)

	var managerID *string
	setManager := req.ManagerID != nil
	if setManager && *req.ManagerID != "" {
		managerID = req.ManagerID
	}

	query := `
		UPDATE users
		SET first_name = COALESCE($2, first_name),
			last_name  = COALESCE($3, last_name),
			department = CASE WHEN $4::boolean THEN $5 ELSE department END,
			manager_id = CASE WHEN $6::boolean THEN $7::uuid ELSE manager_id END,
			role       = COALESCE($8, role),
			is_active  = COALESCE($9, is_active),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		req.ID,
		req.FirstName,
		req.LastName,
		req.Department != nil,
		req.Department,
		setManager,
		managerID,
		req.Role,
		req.IsActive,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdatePassword implements user.Repository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Deactivate implements user.Repository. Deactivating an already inactive
// user is a conflict, not a no-op.
func (r *userRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return user.ErrUserAlreadyInactive
		}
		return user.ErrUserNotFound
	}
	return nil
}

// GetDirectReports implements user.Repository.
func (r *userRepositoryImpl) GetDirectReports(ctx context.Context, managerID string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN users m ON m.id = u.manager_id
		WHERE u.manager_id = $1
		ORDER BY u.last_name, u.first_name
	`

	rows, err := q.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("query direct reports: %w", err)
	}
	defer rows.Close()

	var reports []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, u)
	}
	return reports, rows.Err()
}
