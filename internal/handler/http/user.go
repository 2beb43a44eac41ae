package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/perftrack/perf-review-backend-go/internal/domain/auth"
	"github.com/perftrack/perf-review-backend-go/internal/domain/user"
	"github.com/perftrack/perf-review-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	DirectReports(w http.ResponseWriter, r *http.Request)
	PerformanceSummary(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

// List implements UserHandler.
func (h *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var filter user.ListFilter
	if role := r.URL.Query().Get("role"); role != "" {
		filter.Role = &role
	}
	if department := r.URL.Query().Get("department"); department != "" {
		filter.Department = &department
	}
	if active := r.URL.Query().Get("is_active"); active != "" {
		isActive := active == "true"
		filter.IsActive = &isActive
	}

	users, err := h.userService.List(r.Context(), callerID, filter)
	if err != nil {
		slog.Error("List users service error", "error", err)
		response.HandleError(w, err)
		return
	}

	out := make([]user.UserResponse, len(users))
	for i, u := range users {
		out[i] = user.ToResponse(u)
	}
	response.Success(w, out)
}

// Get implements UserHandler.
func (h *UserHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	u, err := h.userService.Get(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Get user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, user.ToResponse(u))
}

// Update implements UserHandler.
func (h *UserHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var updateReq user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	updated, err := h.userService.Update(r.Context(), callerID, updateReq)
	if err != nil {
		slog.Error("Update user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User updated", "user_id", updated.ID)
	response.SuccessWithMessage(w, "User updated", user.ToResponse(updated))
}

// Deactivate implements UserHandler.
func (h *UserHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	userID := chi.URLParam(r, "id")
	if err := h.userService.Deactivate(r.Context(), callerID, userID); err != nil {
		slog.Error("Deactivate user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User deactivated", "user_id", userID)
	response.SuccessWithMessage(w, "User deactivated", nil)
}

// DirectReports implements UserHandler.
func (h *UserHandlerImpl) DirectReports(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	reports, err := h.userService.DirectReports(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("DirectReports service error", "error", err)
		response.HandleError(w, err)
		return
	}

	out := make([]user.UserResponse, len(reports))
	for i, u := range reports {
		out[i] = user.ToResponse(u)
	}
	response.Success(w, out)
}

// PerformanceSummary implements UserHandler.
func (h *UserHandlerImpl) PerformanceSummary(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	summary, err := h.userService.PerformanceSummary(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("PerformanceSummary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
