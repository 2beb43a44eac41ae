package access

import (
	"context"
	"fmt"

	"github.com/perftrack/perf-review-backend-go/internal/domain/user"
)

// Evaluator decides, for a caller and a target employee, whether a read or
// write is permitted. Rules are evaluated in order, first match wins:
// admin has full scope; a manager's scope is themself plus their direct
// reports; an employee's scope is themself; everything else is denied.
// Decisions are pure over the current user relationships; the evaluator
// never writes.
type Evaluator struct {
	users user.Repository
}

func NewEvaluator(users user.Repository) *Evaluator {
	return &Evaluator{users: users}
}

// ResolveCaller loads the caller and rejects deactivated accounts, so a
// deactivated user is treated as absent by every operation.
func (e *Evaluator) ResolveCaller(ctx context.Context, callerID string) (user.User, error) {
	caller, err := e.users.GetByID(ctx, callerID)
	if err != nil {
		return user.User{}, fmt.Errorf("resolve caller: %w", err)
	}
	if !caller.IsActive {
		return user.User{}, user.ErrUserInactive
	}
	return caller, nil
}

// InScope reports whether employeeID falls inside the caller's scope.
func (e *Evaluator) InScope(ctx context.Context, caller user.User, employeeID string) (bool, error) {
	if caller.Role == user.RoleAdmin {
		return true, nil
	}
	if caller.ID == employeeID {
		return true, nil
	}
	if caller.Role == user.RoleManager {
		target, err := e.users.GetByID(ctx, employeeID)
		if err != nil {
			return false, err
		}
		return target.ManagerID != nil && *target.ManagerID == caller.ID, nil
	}
	return false, nil
}

// CanRead decides read access over one employee's records.
func (e *Evaluator) CanRead(ctx context.Context, caller user.User, employeeID string) (bool, error) {
	return e.InScope(ctx, caller, employeeID)
}

// CanWrite decides write access: the caller's role must carry the permission
// and the target employee must be inside the caller's scope.
func (e *Evaluator) CanWrite(ctx context.Context, caller user.User, employeeID string, perm user.Permission) (bool, error) {
	if !user.HasPermission(caller.Role, perm) {
		return false, nil
	}
	return e.InScope(ctx, caller, employeeID)
}

// VisibleScope returns the employee IDs the caller may see. For admins it
// returns (nil, true): the scope is unbounded and callers should skip
// filtering entirely rather than materialize every employee ID.
func (e *Evaluator) VisibleScope(ctx context.Context, caller user.User) (ids []string, all bool, err error) {
	switch caller.Role {
	case user.RoleAdmin:
		return nil, true, nil
	case user.RoleManager:
		reports, err := e.users.GetDirectReports(ctx, caller.ID)
		if err != nil {
			return nil, false, fmt.Errorf("list direct reports: %w", err)
		}
		ids = make([]string, 0, len(reports)+1)
		ids = append(ids, caller.ID)
		for _, r := range reports {
			ids = append(ids, r.ID)
		}
		return ids, false, nil
	default:
		return []string{caller.ID}, false, nil
	}
}
