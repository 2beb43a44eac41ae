package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/perftrack/perf-review-backend-go/internal/handler/http/middleware"
	"github.com/perftrack/perf-review-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	userHandler UserHandler,
	goalHandler GoalHandler,
	feedbackHandler FeedbackHandler,
	analyticsHandler AnalyticsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "perf-review"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
				r.Post("/change-password", authHandler.ChangePassword)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.List)
				r.Get("/{id}", userHandler.Get)
				r.Put("/{id}", userHandler.Update)
				r.Get("/{id}/performance", userHandler.PerformanceSummary)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/{id}/reports", userHandler.DirectReports)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Delete("/{id}", userHandler.Deactivate)
				})
			})

			r.Route("/goals", func(r chi.Router) {
				r.Post("/", goalHandler.Create)
				r.Get("/", goalHandler.List)
				r.Get("/{id}", goalHandler.Get)
				r.Put("/{id}", goalHandler.Update)
				r.Put("/{id}/progress", goalHandler.UpdateProgress)
				r.Get("/{id}/history", goalHandler.ProgressHistory)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Delete("/{id}", goalHandler.Delete)
				})
			})

			r.Route("/feedback", func(r chi.Router) {
				r.Get("/", feedbackHandler.List)
				r.Get("/{id}", feedbackHandler.Get)
				r.Get("/summary/{employeeId}", feedbackHandler.Summary)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", feedbackHandler.Create)
					r.Put("/{id}", feedbackHandler.Update)
					r.Delete("/{id}", feedbackHandler.Delete)
				})
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/overview", analyticsHandler.TeamOverview)
				r.Get("/performance", analyticsHandler.PerformanceScores)
				r.Get("/top-performers", analyticsHandler.TopPerformers)
				r.Get("/promotions", analyticsHandler.PromotionRecommendations)
				r.Get("/trends", analyticsHandler.GoalTrends)
				r.Get("/feedback-distribution", analyticsHandler.FeedbackDistribution)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/departments", analyticsHandler.DepartmentPerformance)
				})
			})
		})
	})

	return r
}
