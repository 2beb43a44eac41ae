package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/perftrack/perf-review-backend-go/internal/domain/user"
)

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.User{}, user.ErrEmailExists
		}
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	r.store.users[u.ID] = u
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *userRepository) List(ctx context.Context, filter user.ListFilter) ([]user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var users []user.User
	for _, u := range r.store.users {
		if filter.Role != nil && string(u.Role) != *filter.Role {
			continue
		}
		if filter.Department != nil && (u.Department == nil || *u.Department != *filter.Department) {
			continue
		}
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			continue
		}
		if filter.ManagerID != nil {
			isReport := u.ManagerID != nil && *u.ManagerID == *filter.ManagerID
			if !isReport && u.ID != *filter.ManagerID {
				continue
			}
		}
		users = append(users, u)
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].LastName != users[j].LastName {
			return users[i].LastName < users[j].LastName
		}
		return users[i].FirstName < users[j].FirstName
	})
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, req user.UpdateUserRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[req.ID]
	if !ok {
		return user.ErrUserNotFound
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Department != nil {
		u.Department = req.Department
	}
	if req.ManagerID != nil {
		if *req.ManagerID == "" {
			u.ManagerID = nil
		} else {
			u.ManagerID = req.ManagerID
		}
	}
	if req.Role != nil {
		u.Role = user.Role(*req.Role)
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	u.UpdatedAt = time.Now()

	r.store.users[u.ID] = u
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	r.store.users[id] = u
	return nil
}

func (r *userRepository) Deactivate(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	if !u.IsActive {
		return user.ErrUserAlreadyInactive
	}
	u.IsActive = false
	u.UpdatedAt = time.Now()
	r.store.users[id] = u
	return nil
}

func (r *userRepository) GetDirectReports(ctx context.Context, managerID string) ([]user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var reports []user.User
	for _, u := range r.store.users {
		if u.ManagerID != nil && *u.ManagerID == managerID {
			reports = append(reports, u)
		}
	}

	sort.Slice(reports, func(i, j int) bool {
		if reports[i].LastName != reports[j].LastName {
			return reports[i].LastName < reports[j].LastName
		}
		return reports[i].FirstName < reports[j].FirstName
	})
	return reports, nil
}
