package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Goal Management
	PermissionGoalViewOwn Permission = "goal.view_own"
	PermissionGoalCreate  Permission = "goal.create"
	PermissionGoalUpdate  Permission = "goal.update"
	PermissionGoalDelete  Permission = "goal.delete"

	// Feedback Management
	PermissionFeedbackViewOwn Permission = "feedback.view_own"
	PermissionFeedbackCreate  Permission = "feedback.create"
	PermissionFeedbackUpdate  Permission = "feedback.update"
	PermissionFeedbackDelete  Permission = "feedback.delete"

	// Analytics
	PermissionReportsView          Permission = "reports.view"
	PermissionDepartmentReportView Permission = "reports.view_departments"

	// User Management
	PermissionUserView   Permission = "user.view"
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		// Admin has all permissions
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionGoalViewOwn,
		PermissionGoalCreate,
		PermissionGoalUpdate,
		PermissionGoalDelete,
		PermissionFeedbackViewOwn,
		PermissionFeedbackCreate,
		PermissionFeedbackUpdate,
		PermissionFeedbackDelete,
		PermissionReportsView,
		PermissionDepartmentReportView,
		PermissionUserView,
		PermissionUserManage,
	},
	RoleManager: {
		// Manager works within their direct-report scope
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionGoalViewOwn,
		PermissionGoalCreate,
		PermissionGoalUpdate,
		PermissionGoalDelete,
		PermissionFeedbackViewOwn,
		PermissionFeedbackCreate,
		PermissionFeedbackUpdate,
		PermissionFeedbackDelete,
		PermissionReportsView,
		PermissionUserView,
	},
	RoleEmployee: {
		// Employees read their own records and track their own goals
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionGoalViewOwn,
		PermissionGoalCreate,
		PermissionGoalUpdate,
		PermissionFeedbackViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
