package auth

import (
	"context"

	"github.com/perftrack/perf-review-backend-go/internal/domain/user"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)
	Me(ctx context.Context, callerID string) (user.User, error)
	ChangePassword(ctx context.Context, callerID string, req ChangePasswordRequest) error
}
