package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailExists           = errors.New("email already registered")
	ErrInvalidRole           = errors.New("role must be employee, manager or admin")
	ErrInvalidManager        = errors.New("manager reference must be an active manager or admin")
	ErrAccessDenied          = errors.New("access denied to this employee data")
	ErrAdminOnly             = errors.New("admin privilege required")
	ErrManagerAccessRequired = errors.New("manager or admin privilege required")
	ErrUserInactive          = errors.New("user account is inactive")
	ErrUserAlreadyInactive   = errors.New("user is already deactivated")
	ErrNoFieldsToUpdate      = errors.New("no fields to update")
)
