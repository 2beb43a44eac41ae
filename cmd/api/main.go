package main

import (
	"fmt"
	"net/http"

	"github.com/perftrack/perf-review-backend-go/internal/config"
	appHTTP "github.com/perftrack/perf-review-backend-go/internal/handler/http"
	"github.com/perftrack/perf-review-backend-go/internal/pkg/database"
	"github.com/perftrack/perf-review-backend-go/internal/pkg/jwt"
	"github.com/perftrack/perf-review-backend-go/internal/repository/postgresql"
	accessService "github.com/perftrack/perf-review-backend-go/internal/service/access"
	analyticsService "github.com/perftrack/perf-review-backend-go/internal/service/analytics"
	authService "github.com/perftrack/perf-review-backend-go/internal/service/auth"
	feedbackService "github.com/perftrack/perf-review-backend-go/internal/service/feedback"
	goalService "github.com/perftrack/perf-review-backend-go/internal/service/goal"
	userService "github.com/perftrack/perf-review-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolSettings{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	goalRepo := postgresql.NewGoalRepository(db)
	feedbackRepo := postgresql.NewFeedbackRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	evaluator := accessService.NewEvaluator(userRepo)

	authSvc := authService.NewAuthService(userRepo, JWTService)
	userSvc := userService.NewUserService(userRepo, goalRepo, feedbackRepo, evaluator)
	goalSvc := goalService.NewGoalService(goalRepo, userRepo, evaluator)
	feedbackSvc := feedbackService.NewFeedbackService(feedbackRepo, userRepo, evaluator)
	analyticsSvc := analyticsService.NewAnalyticsService(userRepo, goalRepo, feedbackRepo, evaluator)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)
	goalHandler := appHTTP.NewGoalHandler(goalSvc)
	feedbackHandler := appHTTP.NewFeedbackHandler(feedbackSvc)
	analyticsHandler := appHTTP.NewAnalyticsHandler(analyticsSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		userHandler,
		goalHandler,
		feedbackHandler,
		analyticsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
