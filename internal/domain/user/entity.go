package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access over all employees and records
	RoleManager  Role = "manager"  // Scoped to self and direct reports
	RoleEmployee Role = "employee" // Scoped to self
)

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	ManagerID    *string
	Department   *string
	HireDate     time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	ManagerName *string
}

// IsAdmin checks if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if user is manager or admin
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// FullName returns the display name used in listings and reports.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// CanManageReports reports whether u may be referenced as another user's
// manager: u must be active and hold the manager or admin role.
func (u *User) CanManageReports() bool {
	return u.IsActive && u.IsManager()
}
