package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/perftrack/perf-review-backend-go/internal/domain/analytics"
	"github.com/perftrack/perf-review-backend-go/internal/domain/auth"
	"github.com/perftrack/perf-review-backend-go/internal/handler/http/response"
)

type AnalyticsHandler interface {
	TeamOverview(w http.ResponseWriter, r *http.Request)
	PerformanceScores(w http.ResponseWriter, r *http.Request)
	TopPerformers(w http.ResponseWriter, r *http.Request)
	PromotionRecommendations(w http.ResponseWriter, r *http.Request)
	DepartmentPerformance(w http.ResponseWriter, r *http.Request)
	GoalTrends(w http.ResponseWriter, r *http.Request)
	FeedbackDistribution(w http.ResponseWriter, r *http.Request)
}

type AnalyticsHandlerImpl struct {
	analyticsService analytics.Service
}

func NewAnalyticsHandler(analyticsService analytics.Service) AnalyticsHandler {
	return &AnalyticsHandlerImpl{analyticsService: analyticsService}
}

// TeamOverview implements AnalyticsHandler.
func (h *AnalyticsHandlerImpl) TeamOverview(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	overview, err := h.analyticsService.TeamOverview(r.Context(), callerID)
	if err != nil {
		slog.Error("TeamOverview service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, overview)
}

// PerformanceScores implements AnalyticsHandler.
func (h *AnalyticsHandlerImpl) PerformanceScores(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var department *string
	if d := r.URL.Query().Get("department"); d != "" {
		department = &d
	}

	scores, err := h.analyticsService.PerformanceScores(r.Context(), callerID, department)
	if err != nil {
		slog.Error("PerformanceScores service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, scores)
}

// TopPerformers implements AnalyticsHandler.
func (h *AnalyticsHandlerImpl) TopPerformers(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil {
			response.BadRequest(w, "limit must be an integer", nil)
			return
		}
		limit = parsed
	}

	top, err := h.analyticsService.TopPerformers(r.Context(), callerID, limit)
	if err != nil {
		slog.Error("TopPerformers service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, top)
}

// PromotionRecommendations implements AnalyticsHandler.
func (h *AnalyticsHandlerImpl) PromotionRecommendations(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	recommendations, err := h.analyticsService.PromotionRecommendations(r.Context(), callerID)
	if err != nil {
		slog.Error("PromotionRecommendations service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, recommendations)
}

// DepartmentPerformance implements AnalyticsHandler.
func (h *AnalyticsHandlerImpl) DepartmentPerformance(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	departments, err := h.analyticsService.DepartmentPerformance(r.Context(), callerID)
	if err != nil {
		slog.Error("DepartmentPerformance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, departments)
}

// GoalTrends implements AnalyticsHandler.
func (h *AnalyticsHandlerImpl) GoalTrends(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "6m"
	}

	buckets, err := h.analyticsService.GoalTrends(r.Context(), callerID, period)
	if err != nil {
		slog.Error("GoalTrends service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, buckets)
}

// FeedbackDistribution implements AnalyticsHandler.
func (h *AnalyticsHandlerImpl) FeedbackDistribution(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	buckets, err := h.analyticsService.FeedbackDistribution(r.Context(), callerID)
	if err != nil {
		slog.Error("FeedbackDistribution service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, buckets)
}
