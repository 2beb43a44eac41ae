package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/perftrack/perf-review-backend-go/internal/domain/auth"
	"github.com/perftrack/perf-review-backend-go/internal/domain/user"
	"github.com/perftrack/perf-review-backend-go/internal/pkg/jwt"
)

type AuthService struct {
	users user.Repository
	jwt   jwt.Service
}

func NewAuthService(users user.Repository, jwtService jwt.Service) auth.Service {
	return &AuthService{
		users: users,
		jwt:   jwtService,
	}
}

func (s *AuthService) Register(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	if req.ManagerID != nil && *req.ManagerID != "" {
		manager, err := s.users.GetByID(ctx, *req.ManagerID)
		if err != nil {
			return auth.AuthResponse{}, user.ErrInvalidManager
		}
		if !manager.CanManageReports() {
			return auth.AuthResponse{}, user.ErrInvalidManager
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	managerID := req.ManagerID
	if managerID != nil && *managerID == "" {
		managerID = nil
	}

	created, err := s.users.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         user.Role(req.Role),
		ManagerID:    managerID,
		Department:   req.Department,
		HireDate:     time.Now(),
		IsActive:     true,
	})
	if err != nil {
		return auth.AuthResponse{}, err
	}

	return s.issueToken(created)
}

func (s *AuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AuthResponse{}, auth.ErrInvalidCredentials
		}
		return auth.AuthResponse{}, fmt.Errorf("lookup user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.AuthResponse{}, auth.ErrInvalidCredentials
	}

	// Credential check happens before the active check so a disabled
	// account with a wrong password still reads as bad credentials.
	if !u.IsActive {
		return auth.AuthResponse{}, auth.ErrAccountInactive
	}

	return s.issueToken(u)
}

func (s *AuthService) Me(ctx context.Context, callerID string) (user.User, error) {
	u, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return user.User{}, err
	}
	if !u.IsActive {
		return user.User{}, auth.ErrAccountInactive
	}
	return u, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, callerID string, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, callerID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *AuthService) issueToken(u user.User) (auth.AuthResponse, error) {
	token, expiresAt, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.AuthResponse{}, fmt.Errorf("generate access token: %w", err)
	}

	return auth.AuthResponse{
		User:        user.ToResponse(u),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
