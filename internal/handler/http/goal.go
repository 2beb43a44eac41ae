package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/perftrack/perf-review-backend-go/internal/domain/auth"
	"github.com/perftrack/perf-review-backend-go/internal/domain/goal"
	"github.com/perftrack/perf-review-backend-go/internal/handler/http/response"
)

type GoalHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateProgress(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ProgressHistory(w http.ResponseWriter, r *http.Request)
}

type GoalHandlerImpl struct {
	goalService goal.Service
}

func NewGoalHandler(goalService goal.Service) GoalHandler {
	return &GoalHandlerImpl{goalService: goalService}
}

// Create implements GoalHandler.
func (h *GoalHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var createReq goal.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create goal decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.goalService.Create(r.Context(), callerID, createReq)
	if err != nil {
		slog.Error("Create goal service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Goal created", "goal_id", created.ID, "employee_id", created.EmployeeID)
	response.Created(w, "Goal created", goal.ToResponse(created))
}

// List implements GoalHandler.
func (h *GoalHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var filter goal.ListFilter
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}

	goals, err := h.goalService.List(r.Context(), callerID, filter)
	if err != nil {
		slog.Error("List goals service error", "error", err)
		response.HandleError(w, err)
		return
	}

	out := make([]goal.GoalResponse, len(goals))
	for i, g := range goals {
		out[i] = goal.ToResponse(g)
	}
	response.Success(w, out)
}

// Get implements GoalHandler.
func (h *GoalHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	g, err := h.goalService.Get(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Get goal service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, goal.ToResponse(g))
}

// Update implements GoalHandler.
func (h *GoalHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var updateReq goal.UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update goal decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	updated, err := h.goalService.Update(r.Context(), callerID, updateReq)
	if err != nil {
		slog.Error("Update goal service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Goal updated", "goal_id", updated.ID)
	response.SuccessWithMessage(w, "Goal updated", goal.ToResponse(updated))
}

// UpdateProgress implements GoalHandler.
func (h *GoalHandlerImpl) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var progressReq goal.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&progressReq); err != nil {
		slog.Error("UpdateProgress decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.goalService.UpdateProgress(r.Context(), callerID, chi.URLParam(r, "id"), progressReq)
	if err != nil {
		slog.Error("UpdateProgress service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Goal progress updated", "goal_id", updated.ID, "status", updated.Status)
	response.SuccessWithMessage(w, "Progress updated", goal.ToResponse(updated))
}

// Delete implements GoalHandler.
func (h *GoalHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	goalID := chi.URLParam(r, "id")
	if err := h.goalService.Delete(r.Context(), callerID, goalID); err != nil {
		slog.Error("Delete goal service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Goal deleted", "goal_id", goalID)
	response.SuccessWithMessage(w, "Goal deleted", nil)
}

// ProgressHistory implements GoalHandler.
func (h *GoalHandlerImpl) ProgressHistory(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	entries, err := h.goalService.ProgressHistory(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("ProgressHistory service error", "error", err)
		response.HandleError(w, err)
		return
	}

	out := make([]goal.ProgressEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = goal.ToProgressResponse(e)
	}
	response.Success(w, out)
}
