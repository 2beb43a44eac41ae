package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perftrack/perf-review-backend-go/internal/domain/analytics"
	"github.com/perftrack/perf-review-backend-go/internal/domain/feedback"
	"github.com/perftrack/perf-review-backend-go/internal/domain/goal"
	"github.com/perftrack/perf-review-backend-go/internal/domain/user"
	"github.com/perftrack/perf-review-backend-go/internal/pkg/validator"
	"github.com/perftrack/perf-review-backend-go/internal/repository/memory"
	"github.com/perftrack/perf-review-backend-go/internal/service/access"
)

type fixture struct {
	store   *memory.Store
	users   user.Repository
	service analytics.Service
}

func newFixture() *fixture {
	store := memory.NewStore()
	users := store.Users()
	evaluator := access.NewEvaluator(users)
	return &fixture{
		store:   store,
		users:   users,
		service: NewAnalyticsService(users, store.Goals(), store.Feedback(), evaluator),
	}
}

func (f *fixture) seedUser(t *testing.T, role user.Role, managerID *string, department *string) user.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), user.User{
		Email:      uuid.NewString() + "@example.com",
		FirstName:  "Test",
		LastName:   string(role),
		Role:       role,
		ManagerID:  managerID,
		Department: department,
		HireDate:   time.Now(),
		IsActive:   true,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) seedGoal(t *testing.T, employeeID string, target, current int64, status goal.Status) goal.Goal {
	t.Helper()
	g := goal.Goal{
		EmployeeID:   employeeID,
		Title:        "Quota",
		KPIName:      "units",
		TargetValue:  decimal.NewFromInt(target),
		CurrentValue: decimal.NewFromInt(current),
		Status:       status,
		CreatedBy:    employeeID,
	}
	if status == goal.StatusCompleted {
		now := time.Now()
		g.CompletedDate = &now
	}
	created, err := f.store.Goals().Create(context.Background(), g)
	require.NoError(t, err)
	return created
}

func (f *fixture) seedFeedback(t *testing.T, employeeID, managerID string, rating int) {
	t.Helper()
	_, err := f.store.Feedback().Create(context.Background(), feedback.Feedback{
		EmployeeID:   employeeID,
		ManagerID:    managerID,
		Rating:       rating,
		Comments:     "noted",
		FeedbackType: feedback.TypeGeneral,
	})
	require.NoError(t, err)
}

func TestTeamOverview_ManagerScope(t *testing.T) {
	f := newFixture()
	manager := f.seedUser(t, user.RoleManager, nil, nil)
	report := f.seedUser(t, user.RoleEmployee, &manager.ID, nil)
	outsider := f.seedUser(t, user.RoleEmployee, nil, nil)

	f.seedGoal(t, report.ID, 10, 10, goal.StatusCompleted)
	f.seedGoal(t, report.ID, 10, 4, goal.StatusInProgress)
	f.seedGoal(t, outsider.ID, 10, 10, goal.StatusCompleted)
	f.seedFeedback(t, report.ID, manager.ID, 4)

	// The manager's own records never count toward their team's numbers.
	f.seedGoal(t, manager.ID, 10, 10, goal.StatusCompleted)
	f.seedFeedback(t, manager.ID, manager.ID, 5)

	overview, err := f.service.TeamOverview(context.Background(), manager.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, overview.TotalEmployees)
	assert.Equal(t, 2, overview.TotalGoals)
	assert.Equal(t, 1, overview.CompletedGoals)
	assert.Equal(t, 1, overview.InProgressGoals)
	assert.Equal(t, 1, overview.TotalFeedback)
	require.NotNil(t, overview.AverageRating)
	assert.InDelta(t, 4.0, *overview.AverageRating, 1e-9)
}

func TestTeamOverview_EmployeeRefused(t *testing.T) {
	f := newFixture()
	emp := f.seedUser(t, user.RoleEmployee, nil, nil)

	_, err := f.service.TeamOverview(context.Background(), emp.ID)
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)
}

func TestPerformanceScores_SortedAndScored(t *testing.T) {
	f := newFixture()
	admin := f.seedUser(t, user.RoleAdmin, nil, nil)
	manager := f.seedUser(t, user.RoleManager, nil, nil)
	strong := f.seedUser(t, user.RoleEmployee, &manager.ID, nil)
	weak := f.seedUser(t, user.RoleEmployee, &manager.ID, nil)

	f.seedGoal(t, strong.ID, 10, 10, goal.StatusCompleted)
	f.seedFeedback(t, strong.ID, manager.ID, 5)
	f.seedGoal(t, weak.ID, 10, 2, goal.StatusInProgress)
	f.seedFeedback(t, weak.ID, manager.ID, 2)

	scores, err := f.service.PerformanceScores(context.Background(), admin.ID, nil)
	require.NoError(t, err)

	// Only employee-role subjects are scored; the manager and admin are not.
	require.Len(t, scores, 2)

	assert.Equal(t, strong.ID, scores[0].EmployeeID)
	// 100*0.6 + 100*0.4 = 100
	assert.Equal(t, 100, scores[0].OverallScore)
	assert.Equal(t, 1, scores[0].CompletedGoals)

	assert.Equal(t, weak.ID, scores[1].EmployeeID)
	// 20*0.6 + 40*0.4 = 28
	assert.Equal(t, 28, scores[1].OverallScore)
}

func TestPerformanceScores_DepartmentFilter(t *testing.T) {
	f := newFixture()
	admin := f.seedUser(t, user.RoleAdmin, nil, nil)
	sales := "sales"
	eng := "engineering"
	inSales := f.seedUser(t, user.RoleEmployee, nil, &sales)
	f.seedUser(t, user.RoleEmployee, nil, &eng)

	scores, err := f.service.PerformanceScores(context.Background(), admin.ID, &sales)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, inSales.ID, scores[0].EmployeeID)
}

func TestTopPerformers(t *testing.T) {
	f := newFixture()
	admin := f.seedUser(t, user.RoleAdmin, nil, nil)
	manager := f.seedUser(t, user.RoleManager, nil, nil)
	a := f.seedUser(t, user.RoleEmployee, &manager.ID, nil)
	b := f.seedUser(t, user.RoleEmployee, &manager.ID, nil)
	f.seedUser(t, user.RoleEmployee, &manager.ID, nil) // no goals, never ranked

	f.seedGoal(t, a.ID, 10, 10, goal.StatusCompleted)
	f.seedGoal(t, b.ID, 10, 5, goal.StatusInProgress)

	top, err := f.service.TopPerformers(context.Background(), admin.ID, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, a.ID, top[0].EmployeeID)

	all, err := f.service.TopPerformers(context.Background(), admin.ID, 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTopPerformers_DefaultLimit(t *testing.T) {
	f := newFixture()
	admin := f.seedUser(t, user.RoleAdmin, nil, nil)
	for i := 0; i < 12; i++ {
		emp := f.seedUser(t, user.RoleEmployee, nil, nil)
		f.seedGoal(t, emp.ID, 10, 5, goal.StatusInProgress)
	}

	top, err := f.service.TopPerformers(context.Background(), admin.ID, 0)
	require.NoError(t, err)
	assert.Len(t, top, 10)
}

func TestPromotionRecommendations_Tiers(t *testing.T) {
	f := newFixture()
	manager := f.seedUser(t, user.RoleManager, nil, nil)
	star := f.seedUser(t, user.RoleEmployee, &manager.ID, nil)
	solid := f.seedUser(t, user.RoleEmployee, &manager.ID, nil)

	f.seedGoal(t, star.ID, 10, 10, goal.StatusCompleted)
	f.seedFeedback(t, star.ID, manager.ID, 5)
	// 80*0.6 + 70*0.4 = 76 → recommended
	f.seedGoal(t, solid.ID, 10, 8, goal.StatusInProgress)
	f.seedFeedback(t, solid.ID, manager.ID, 4)
	f.seedFeedback(t, solid.ID, manager.ID, 3)

	recs, err := f.service.PromotionRecommendations(context.Background(), manager.ID)
	require.NoError(t, err)

	// The reporting manager is never a candidate on their own list.
	require.Len(t, recs, 2)

	assert.Equal(t, star.ID, recs[0].EmployeeID)
	assert.Equal(t, analytics.TierHighlyRecommended, recs[0].Recommendation)
	assert.False(t, recs[0].HireDate.IsZero())

	assert.Equal(t, solid.ID, recs[1].EmployeeID)
	assert.Equal(t, 76, recs[1].OverallScore)
	assert.Equal(t, analytics.TierRecommended, recs[1].Recommendation)
}

func TestDepartmentPerformance_AdminOnly(t *testing.T) {
	f := newFixture()
	admin := f.seedUser(t, user.RoleAdmin, nil, nil)
	sales := "sales"
	eng := "engineering"
	manager := f.seedUser(t, user.RoleManager, nil, &sales)
	seller := f.seedUser(t, user.RoleEmployee, &manager.ID, &sales)
	f.seedUser(t, user.RoleEmployee, &manager.ID, &sales)
	builder := f.seedUser(t, user.RoleEmployee, &manager.ID, &eng)

	f.seedGoal(t, seller.ID, 10, 10, goal.StatusCompleted)
	f.seedGoal(t, seller.ID, 10, 3, goal.StatusInProgress)
	f.seedGoal(t, builder.ID, 10, 10, goal.StatusCompleted)
	f.seedFeedback(t, seller.ID, manager.ID, 4)

	// Managers do not roll into their department's stats.
	f.seedGoal(t, manager.ID, 10, 10, goal.StatusCompleted)

	_, err := f.service.DepartmentPerformance(context.Background(), manager.ID)
	assert.ErrorIs(t, err, user.ErrAdminOnly)

	departments, err := f.service.DepartmentPerformance(context.Background(), admin.ID)
	require.NoError(t, err)
	require.Len(t, departments, 2)

	// Alphabetical: engineering before sales.
	assert.Equal(t, "engineering", departments[0].Department)
	assert.Equal(t, 1, departments[0].EmployeeCount)
	assert.InDelta(t, 100.0, departments[0].CompletionRate, 1e-9)

	assert.Equal(t, "sales", departments[1].Department)
	assert.Equal(t, 2, departments[1].EmployeeCount)
	assert.Equal(t, 2, departments[1].TotalGoals)
	assert.Equal(t, 1, departments[1].CompletedGoals)
	assert.InDelta(t, 50.0, departments[1].CompletionRate, 1e-9)
	require.NotNil(t, departments[1].AverageRating)
	assert.InDelta(t, 4.0, *departments[1].AverageRating, 1e-9)
}

func TestGoalTrends(t *testing.T) {
	f := newFixture()
	manager := f.seedUser(t, user.RoleManager, nil, nil)
	report := f.seedUser(t, user.RoleEmployee, &manager.ID, nil)

	f.seedGoal(t, report.ID, 10, 10, goal.StatusCompleted)
	f.seedGoal(t, report.ID, 10, 2, goal.StatusInProgress)

	buckets, err := f.service.GoalTrends(context.Background(), manager.ID, "3m")
	require.NoError(t, err)
	require.Len(t, buckets, 3)

	// Months ascend and end at the current month, where both goals land.
	assert.True(t, buckets[0].Month.Before(buckets[1].Month))
	assert.True(t, buckets[1].Month.Before(buckets[2].Month))

	last := buckets[2]
	assert.Equal(t, 2, last.GoalsCreated)
	assert.Equal(t, 1, last.GoalsCompleted)
}

func TestGoalTrends_InvalidPeriod(t *testing.T) {
	f := newFixture()
	manager := f.seedUser(t, user.RoleManager, nil, nil)

	_, err := f.service.GoalTrends(context.Background(), manager.ID, "2w")
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestFeedbackDistribution(t *testing.T) {
	f := newFixture()
	manager := f.seedUser(t, user.RoleManager, nil, nil)
	report := f.seedUser(t, user.RoleEmployee, &manager.ID, nil)

	for _, rating := range []int{5, 5, 4, 2} {
		f.seedFeedback(t, report.ID, manager.ID, rating)
	}

	buckets, err := f.service.FeedbackDistribution(context.Background(), manager.ID)
	require.NoError(t, err)
	require.Len(t, buckets, 5)

	counts := map[int]int{}
	for _, b := range buckets {
		counts[b.Rating] = b.Count
	}
	assert.Equal(t, 0, counts[1])
	assert.Equal(t, 1, counts[2])
	assert.Equal(t, 0, counts[3])
	assert.Equal(t, 1, counts[4])
	assert.Equal(t, 2, counts[5])
}
