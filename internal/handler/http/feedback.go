package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/perftrack/perf-review-backend-go/internal/domain/auth"
	"github.com/perftrack/perf-review-backend-go/internal/domain/feedback"
	"github.com/perftrack/perf-review-backend-go/internal/handler/http/response"
)

type FeedbackHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type FeedbackHandlerImpl struct {
	feedbackService feedback.Service
}

func NewFeedbackHandler(feedbackService feedback.Service) FeedbackHandler {
	return &FeedbackHandlerImpl{feedbackService: feedbackService}
}

// Create implements FeedbackHandler.
func (h *FeedbackHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var createReq feedback.CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create feedback decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.feedbackService.Create(r.Context(), callerID, createReq)
	if err != nil {
		slog.Error("Create feedback service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Feedback created", "feedback_id", created.ID, "employee_id", created.EmployeeID)
	response.Created(w, "Feedback created", feedback.ToResponse(created))
}

// List implements FeedbackHandler.
func (h *FeedbackHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var filter feedback.ListFilter
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if feedbackType := r.URL.Query().Get("feedback_type"); feedbackType != "" {
		filter.FeedbackType = &feedbackType
	}

	records, err := h.feedbackService.List(r.Context(), callerID, filter)
	if err != nil {
		slog.Error("List feedback service error", "error", err)
		response.HandleError(w, err)
		return
	}

	out := make([]feedback.FeedbackResponse, len(records))
	for i, f := range records {
		out[i] = feedback.ToResponse(f)
	}
	response.Success(w, out)
}

// Get implements FeedbackHandler.
func (h *FeedbackHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	f, err := h.feedbackService.Get(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Get feedback service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, feedback.ToResponse(f))
}

// Update implements FeedbackHandler.
func (h *FeedbackHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var updateReq feedback.UpdateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update feedback decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	updated, err := h.feedbackService.Update(r.Context(), callerID, updateReq)
	if err != nil {
		slog.Error("Update feedback service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Feedback updated", "feedback_id", updated.ID)
	response.SuccessWithMessage(w, "Feedback updated", feedback.ToResponse(updated))
}

// Delete implements FeedbackHandler.
func (h *FeedbackHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	feedbackID := chi.URLParam(r, "id")
	if err := h.feedbackService.Delete(r.Context(), callerID, feedbackID); err != nil {
		slog.Error("Delete feedback service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Feedback deleted", "feedback_id", feedbackID)
	response.SuccessWithMessage(w, "Feedback deleted", nil)
}

// Summary implements FeedbackHandler.
func (h *FeedbackHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	summary, err := h.feedbackService.Summarize(r.Context(), callerID, chi.URLParam(r, "employeeId"))
	if err != nil {
		slog.Error("Feedback summary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
