package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/perftrack/perf-review-backend-go/internal/domain/analytics"
	"github.com/perftrack/perf-review-backend-go/internal/domain/feedback"
	"github.com/perftrack/perf-review-backend-go/internal/domain/goal"
	"github.com/perftrack/perf-review-backend-go/internal/domain/user"
	"github.com/perftrack/perf-review-backend-go/internal/pkg/validator"
	"github.com/perftrack/perf-review-backend-go/internal/service/access"
	"github.com/perftrack/perf-review-backend-go/internal/service/scoring"
)

// scoreConcurrency caps the per-employee scoring fan-out.
const scoreConcurrency = 8

const defaultTopPerformers = 10

type AnalyticsService struct {
	users    user.Repository
	goals    goal.Repository
	feedback feedback.Repository
	access   *access.Evaluator
	now      func() time.Time
}

func NewAnalyticsService(users user.Repository, goals goal.Repository, fb feedback.Repository, evaluator *access.Evaluator) analytics.Service {
	return &AnalyticsService{
		users:    users,
		goals:    goals,
		feedback: fb,
		access:   evaluator,
		now:      time.Now,
	}
}

// resolveReporter admits only managers and admins.
func (s *AnalyticsService) resolveReporter(ctx context.Context, callerID string) (user.User, error) {
	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return user.User{}, err
	}
	if !caller.IsManager() {
		return user.User{}, user.ErrManagerAccessRequired
	}
	return caller, nil
}

// scopeEmployees materializes the employee-role population the caller
// reports over: the whole active employee directory for admins, the
// manager's active direct reports otherwise. The caller is never part
// of their own reporting population.
func (s *AnalyticsService) scopeEmployees(ctx context.Context, caller user.User) ([]user.User, error) {
	if caller.IsAdmin() {
		role := string(user.RoleEmployee)
		active := true
		users, err := s.users.List(ctx, user.ListFilter{Role: &role, IsActive: &active})
		if err != nil {
			return nil, fmt.Errorf("list employees: %w", err)
		}
		return users, nil
	}

	reports, err := s.users.GetDirectReports(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("list direct reports: %w", err)
	}
	team := make([]user.User, 0, len(reports))
	for _, r := range reports {
		if r.IsActive && r.Role == user.RoleEmployee {
			team = append(team, r)
		}
	}
	return team, nil
}

func scopeIDs(team []user.User) []string {
	ids := make([]string, len(team))
	for i, u := range team {
		ids[i] = u.ID
	}
	return ids
}

// scoreTeam runs the scoring pipeline for each employee concurrently. The
// result keeps the input order.
func (s *AnalyticsService) scoreTeam(ctx context.Context, team []user.User) ([]analytics.EmployeeScore, error) {
	scores := make([]analytics.EmployeeScore, len(team))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(scoreConcurrency)
	for i, employee := range team {
		i, employee := i, employee
		g.Go(func() error {
			goals, err := s.goals.List(ctx, goal.ListFilter{EmployeeID: &employee.ID})
			if err != nil {
				return fmt.Errorf("load goals for %s: %w", employee.ID, err)
			}
			records, err := s.feedback.GetByEmployeeID(ctx, employee.ID)
			if err != nil {
				return fmt.Errorf("load feedback for %s: %w", employee.ID, err)
			}

			score := analytics.EmployeeScore{
				EmployeeID:          employee.ID,
				Name:                employee.FullName(),
				Department:          employee.Department,
				TotalGoals:          len(goals),
				AverageRating:       scoring.MeanRating(records),
				GoalCompletionScore: scoring.GoalCompletionScore(goals),
				FeedbackScore:       scoring.FeedbackScore(records),
				OverallScore:        scoring.OverallScore(goals, records),
			}
			for _, gl := range goals {
				if gl.Status == goal.StatusCompleted {
					score.CompletedGoals++
				}
			}
			scores[i] = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

func (s *AnalyticsService) TeamOverview(ctx context.Context, callerID string) (analytics.TeamOverview, error) {
	caller, err := s.resolveReporter(ctx, callerID)
	if err != nil {
		return analytics.TeamOverview{}, err
	}

	team, err := s.scopeEmployees(ctx, caller)
	if err != nil {
		return analytics.TeamOverview{}, err
	}

	ids := scopeIDs(team)
	goalFilter := goal.ListFilter{EmployeeIDs: ids}
	feedbackFilter := feedback.ListFilter{EmployeeIDs: ids}

	goals, err := s.goals.List(ctx, goalFilter)
	if err != nil {
		return analytics.TeamOverview{}, fmt.Errorf("list goals: %w", err)
	}
	records, err := s.feedback.List(ctx, feedbackFilter)
	if err != nil {
		return analytics.TeamOverview{}, fmt.Errorf("list feedback: %w", err)
	}

	overview := analytics.TeamOverview{
		TotalEmployees: len(team),
		TotalGoals:     len(goals),
		TotalFeedback:  len(records),
		AverageRating:  scoring.MeanRating(records),
	}
	now := s.now()
	for _, g := range goals {
		switch g.Status {
		case goal.StatusCompleted:
			overview.CompletedGoals++
		case goal.StatusInProgress:
			overview.InProgressGoals++
		}
		if g.IsOverdue(now) {
			overview.OverdueGoals++
		}
	}
	return overview, nil
}

func (s *AnalyticsService) PerformanceScores(ctx context.Context, callerID string, department *string) ([]analytics.EmployeeScore, error) {
	caller, err := s.resolveReporter(ctx, callerID)
	if err != nil {
		return nil, err
	}

	team, err := s.scopeEmployees(ctx, caller)
	if err != nil {
		return nil, err
	}

	if department != nil {
		filtered := team[:0]
		for _, u := range team {
			if u.Department != nil && *u.Department == *department {
				filtered = append(filtered, u)
			}
		}
		team = filtered
	}

	scores, err := s.scoreTeam(ctx, team)
	if err != nil {
		return nil, err
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].OverallScore != scores[j].OverallScore {
			return scores[i].OverallScore > scores[j].OverallScore
		}
		return scores[i].EmployeeID < scores[j].EmployeeID
	})
	return scores, nil
}

func (s *AnalyticsService) TopPerformers(ctx context.Context, callerID string, limit int) ([]analytics.EmployeeScore, error) {
	if limit <= 0 {
		limit = defaultTopPerformers
	}

	scores, err := s.PerformanceScores(ctx, callerID, nil)
	if err != nil {
		return nil, err
	}

	// Employees without a single goal are not ranked.
	ranked := scores[:0]
	for _, sc := range scores {
		if sc.TotalGoals > 0 {
			ranked = append(ranked, sc)
		}
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (s *AnalyticsService) PromotionRecommendations(ctx context.Context, callerID string) ([]analytics.PromotionRecommendation, error) {
	caller, err := s.resolveReporter(ctx, callerID)
	if err != nil {
		return nil, err
	}

	team, err := s.scopeEmployees(ctx, caller)
	if err != nil {
		return nil, err
	}

	scores, err := s.scoreTeam(ctx, team)
	if err != nil {
		return nil, err
	}

	recommendations := make([]analytics.PromotionRecommendation, len(scores))
	for i, sc := range scores {
		recommendations[i] = analytics.PromotionRecommendation{
			EmployeeScore:  sc,
			HireDate:       team[i].HireDate,
			Recommendation: scoring.PromotionTier(sc.OverallScore),
		}
	}

	sort.Slice(recommendations, func(i, j int) bool {
		if recommendations[i].OverallScore != recommendations[j].OverallScore {
			return recommendations[i].OverallScore > recommendations[j].OverallScore
		}
		return recommendations[i].EmployeeID < recommendations[j].EmployeeID
	})
	return recommendations, nil
}

func (s *AnalyticsService) DepartmentPerformance(ctx context.Context, callerID string) ([]analytics.DepartmentPerformance, error) {
	caller, err := s.access.ResolveCaller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, user.ErrAdminOnly
	}

	role := string(user.RoleEmployee)
	active := true
	users, err := s.users.List(ctx, user.ListFilter{Role: &role, IsActive: &active})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	type stats struct {
		employees      int
		totalGoals     int
		completedGoals int
		ratingSum      int
		ratingCount    int
	}
	byDept := make(map[string]*stats)
	for _, u := range users {
		if u.Department == nil {
			continue
		}
		st := byDept[*u.Department]
		if st == nil {
			st = &stats{}
			byDept[*u.Department] = st
		}
		st.employees++

		goals, err := s.goals.List(ctx, goal.ListFilter{EmployeeID: &u.ID})
		if err != nil {
			return nil, fmt.Errorf("load goals for %s: %w", u.ID, err)
		}
		st.totalGoals += len(goals)
		for _, g := range goals {
			if g.Status == goal.StatusCompleted {
				st.completedGoals++
			}
		}

		records, err := s.feedback.GetByEmployeeID(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("load feedback for %s: %w", u.ID, err)
		}
		for _, f := range records {
			st.ratingSum += f.Rating
			st.ratingCount++
		}
	}

	departments := make([]analytics.DepartmentPerformance, 0, len(byDept))
	for name, st := range byDept {
		dept := analytics.DepartmentPerformance{
			Department:     name,
			EmployeeCount:  st.employees,
			TotalGoals:     st.totalGoals,
			CompletedGoals: st.completedGoals,
		}
		if st.totalGoals > 0 {
			dept.CompletionRate = float64(st.completedGoals) / float64(st.totalGoals) * 100
		}
		if st.ratingCount > 0 {
			mean := float64(st.ratingSum) / float64(st.ratingCount)
			dept.AverageRating = &mean
		}
		departments = append(departments, dept)
	}

	sort.Slice(departments, func(i, j int) bool {
		return departments[i].Department < departments[j].Department
	})
	return departments, nil
}

// periodMonths maps the accepted trend periods to a month count.
var periodMonths = map[string]int{
	"1m": 1,
	"3m": 3,
	"6m": 6,
	"1y": 12,
}

func (s *AnalyticsService) GoalTrends(ctx context.Context, callerID string, period string) ([]analytics.TrendBucket, error) {
	months, ok := periodMonths[period]
	if !ok {
		return nil, validator.ValidationErrors{{
			Field:   "period",
			Message: "period must be one of 1m, 3m, 6m, 1y",
		}}
	}

	caller, err := s.resolveReporter(ctx, callerID)
	if err != nil {
		return nil, err
	}

	team, err := s.scopeEmployees(ctx, caller)
	if err != nil {
		return nil, err
	}

	goals, err := s.goals.List(ctx, goal.ListFilter{EmployeeIDs: scopeIDs(team)})
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	now := s.now().UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	// Oldest month first, the current month last.
	buckets := make([]analytics.TrendBucket, months)
	index := make(map[time.Time]int, months)
	for i := 0; i < months; i++ {
		month := current.AddDate(0, i-months+1, 0)
		buckets[i] = analytics.TrendBucket{Month: month}
		index[month] = i
	}

	for _, g := range goals {
		created := g.CreatedAt.UTC()
		createdMonth := time.Date(created.Year(), created.Month(), 1, 0, 0, 0, 0, time.UTC)
		if i, ok := index[createdMonth]; ok {
			buckets[i].GoalsCreated++
		}

		if g.CompletedDate != nil {
			completed := g.CompletedDate.UTC()
			completedMonth := time.Date(completed.Year(), completed.Month(), 1, 0, 0, 0, 0, time.UTC)
			if i, ok := index[completedMonth]; ok {
				buckets[i].GoalsCompleted++
			}
		}
	}
	return buckets, nil
}

func (s *AnalyticsService) FeedbackDistribution(ctx context.Context, callerID string) ([]analytics.RatingBucket, error) {
	caller, err := s.resolveReporter(ctx, callerID)
	if err != nil {
		return nil, err
	}

	team, err := s.scopeEmployees(ctx, caller)
	if err != nil {
		return nil, err
	}

	records, err := s.feedback.List(ctx, feedback.ListFilter{EmployeeIDs: scopeIDs(team)})
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}

	buckets := make([]analytics.RatingBucket, 5)
	for i := range buckets {
		buckets[i].Rating = i + 1
	}
	for _, f := range records {
		if f.Rating >= 1 && f.Rating <= 5 {
			buckets[f.Rating-1].Count++
		}
	}
	return buckets, nil
}
