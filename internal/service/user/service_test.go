package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perftrack/perf-review-backend-go/internal/domain/feedback"
	"github.com/perftrack/perf-review-backend-go/internal/domain/goal"
	"github.com/perftrack/perf-review-backend-go/internal/domain/user"
	"github.com/perftrack/perf-review-backend-go/internal/repository/memory"
	"github.com/perftrack/perf-review-backend-go/internal/service/access"
)

type fixture struct {
	store   *memory.Store
	users   user.Repository
	service user.Service
}

func newFixture() *fixture {
	store := memory.NewStore()
	users := store.Users()
	evaluator := access.NewEvaluator(users)
	return &fixture{
		store:   store,
		users:   users,
		service: NewUserService(users, store.Goals(), store.Feedback(), evaluator),
	}
}

func (f *fixture) seedUser(t *testing.T, role user.Role, managerID *string) user.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), user.User{
		Email:     uuid.NewString() + "@example.com",
		FirstName: "Test",
		LastName:  string(role),
		Role:      role,
		ManagerID: managerID,
		HireDate:  time.Now(),
		IsActive:  true,
	})
	require.NoError(t, err)
	return u
}

func TestList_AdminSeesEveryone(t *testing.T) {
	f := newFixture()
	admin := f.seedUser(t, user.RoleAdmin, nil)
	f.seedUser(t, user.RoleManager, nil)
	f.seedUser(t, user.RoleEmployee, nil)

	users, err := f.service.List(context.Background(), admin.ID, user.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestList_ManagerSeesTeam(t *testing.T) {
	f := newFixture()
	manager := f.seedUser(t, user.RoleManager, nil)
	report := f.seedUser(t, user.RoleEmployee, &manager.ID)
	f.seedUser(t, user.RoleEmployee, nil)

	users, err := f.service.List(context.Background(), manager.ID, user.ListFilter{})
	require.NoError(t, err)
	require.Len(t, users, 2)

	ids := []string{users[0].ID, users[1].ID}
	assert.ElementsMatch(t, []string{manager.ID, report.ID}, ids)
}

func TestList_EmployeeSeesSelf(t *testing.T) {
	f := newFixture()
	emp := f.seedUser(t, user.RoleEmployee, nil)
	f.seedUser(t, user.RoleEmployee, nil)

	users, err := f.service.List(context.Background(), emp.ID, user.ListFilter{})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, emp.ID, users[0].ID)
}

func TestGet_ScopeEnforced(t *testing.T) {
	f := newFixture()
	manager := f.seedUser(t, user.RoleManager, nil)
	report := f.seedUser(t, user.RoleEmployee, &manager.ID)
	peer := f.seedUser(t, user.RoleEmployee, nil)
	ctx := context.Background()

	got, err := f.service.Get(ctx, manager.ID, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)

	_, err = f.service.Get(ctx, peer.ID, report.ID)
	assert.ErrorIs(t, err, user.ErrAccessDenied)
}

func TestUpdate_SelfNameFields(t *testing.T) {
	f := newFixture()
	emp := f.seedUser(t, user.RoleEmployee, nil)
	ctx := context.Background()

	name := "Updated"
	updated, err := f.service.Update(ctx, emp.ID, user.UpdateUserRequest{ID: emp.ID, FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Updated", updated.FirstName)
}

func TestUpdate_RoleChangeRequiresAdmin(t *testing.T) {
	f := newFixture()
	emp := f.seedUser(t, user.RoleEmployee, nil)
	admin := f.seedUser(t, user.RoleAdmin, nil)
	ctx := context.Background()

	role := string(user.RoleManager)
	_, err := f.service.Update(ctx, emp.ID, user.UpdateUserRequest{ID: emp.ID, Role: &role})
	assert.ErrorIs(t, err, user.ErrAdminOnly)

	updated, err := f.service.Update(ctx, admin.ID, user.UpdateUserRequest{ID: emp.ID, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, user.RoleManager, updated.Role)
}

func TestUpdate_ManagerReferenceValidated(t *testing.T) {
	f := newFixture()
	admin := f.seedUser(t, user.RoleAdmin, nil)
	emp := f.seedUser(t, user.RoleEmployee, nil)
	otherEmp := f.seedUser(t, user.RoleEmployee, nil)
	manager := f.seedUser(t, user.RoleManager, nil)
	ctx := context.Background()

	// Self-reference, dangling ID and employee-role referents are all refused.
	for _, badID := range []string{emp.ID, uuid.NewString(), otherEmp.ID} {
		id := badID
		_, err := f.service.Update(ctx, admin.ID, user.UpdateUserRequest{ID: emp.ID, ManagerID: &id})
		assert.ErrorIs(t, err, user.ErrInvalidManager)
	}

	updated, err := f.service.Update(ctx, admin.ID, user.UpdateUserRequest{ID: emp.ID, ManagerID: &manager.ID})
	require.NoError(t, err)
	require.NotNil(t, updated.ManagerID)
	assert.Equal(t, manager.ID, *updated.ManagerID)

	// Clearing the assignment with an empty string detaches the report.
	empty := ""
	cleared, err := f.service.Update(ctx, admin.ID, user.UpdateUserRequest{ID: emp.ID, ManagerID: &empty})
	require.NoError(t, err)
	assert.Nil(t, cleared.ManagerID)
}

func TestUpdate_NoFields(t *testing.T) {
	f := newFixture()
	emp := f.seedUser(t, user.RoleEmployee, nil)

	_, err := f.service.Update(context.Background(), emp.ID, user.UpdateUserRequest{ID: emp.ID})
	assert.ErrorIs(t, err, user.ErrNoFieldsToUpdate)
}

func TestDeactivate(t *testing.T) {
	f := newFixture()
	admin := f.seedUser(t, user.RoleAdmin, nil)
	manager := f.seedUser(t, user.RoleManager, nil)
	emp := f.seedUser(t, user.RoleEmployee, &manager.ID)
	ctx := context.Background()

	err := f.service.Deactivate(ctx, manager.ID, emp.ID)
	assert.ErrorIs(t, err, user.ErrAdminOnly)

	require.NoError(t, f.service.Deactivate(ctx, admin.ID, emp.ID))

	// Deactivating twice is a conflict, and the deactivated user can no
	// longer act as a caller.
	err = f.service.Deactivate(ctx, admin.ID, emp.ID)
	assert.ErrorIs(t, err, user.ErrUserAlreadyInactive)

	_, err = f.service.Get(ctx, emp.ID, emp.ID)
	assert.ErrorIs(t, err, user.ErrUserInactive)
}

func TestDirectReports(t *testing.T) {
	f := newFixture()
	manager := f.seedUser(t, user.RoleManager, nil)
	report := f.seedUser(t, user.RoleEmployee, &manager.ID)
	otherManager := f.seedUser(t, user.RoleManager, nil)
	admin := f.seedUser(t, user.RoleAdmin, nil)
	ctx := context.Background()

	reports, err := f.service.DirectReports(ctx, manager.ID, manager.ID)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, report.ID, reports[0].ID)

	_, err = f.service.DirectReports(ctx, otherManager.ID, manager.ID)
	assert.ErrorIs(t, err, user.ErrAccessDenied)

	adminView, err := f.service.DirectReports(ctx, admin.ID, manager.ID)
	require.NoError(t, err)
	assert.Len(t, adminView, 1)
}

func TestPerformanceSummary(t *testing.T) {
	f := newFixture()
	manager := f.seedUser(t, user.RoleManager, nil)
	emp := f.seedUser(t, user.RoleEmployee, &manager.ID)
	ctx := context.Background()

	goals := f.store.Goals()
	// One completed at 100%, one in progress at 70%.
	_, err := goals.Create(ctx, goal.Goal{
		EmployeeID:   emp.ID,
		Title:        "Ship v2",
		KPIName:      "releases",
		TargetValue:  decimal.NewFromInt(10),
		CurrentValue: decimal.NewFromInt(10),
		Status:       goal.StatusCompleted,
		CreatedBy:    manager.ID,
	})
	require.NoError(t, err)
	_, err = goals.Create(ctx, goal.Goal{
		EmployeeID:   emp.ID,
		Title:        "Reduce bugs",
		KPIName:      "bug_count",
		TargetValue:  decimal.NewFromInt(10),
		CurrentValue: decimal.NewFromInt(7),
		Status:       goal.StatusInProgress,
		CreatedBy:    manager.ID,
	})
	require.NoError(t, err)

	for _, rating := range []int{4, 5} {
		_, err := f.store.Feedback().Create(ctx, feedback.Feedback{
			EmployeeID:   emp.ID,
			ManagerID:    manager.ID,
			Rating:       rating,
			Comments:     "keep it up",
			FeedbackType: feedback.TypeGeneral,
		})
		require.NoError(t, err)
	}

	summary, err := f.service.PerformanceSummary(ctx, manager.ID, emp.ID)
	require.NoError(t, err)

	assert.Equal(t, emp.ID, summary.EmployeeID)
	assert.Equal(t, 2, summary.TotalGoals)
	assert.Equal(t, 1, summary.CompletedGoals)
	assert.Equal(t, 1, summary.InProgressGoals)
	assert.Equal(t, 2, summary.TotalFeedback)
	require.NotNil(t, summary.AverageRating)
	assert.InDelta(t, 4.5, *summary.AverageRating, 1e-9)
	assert.InDelta(t, 85.0, summary.GoalCompletionScore, 1e-9)
	// 85*0.6 + 90*0.4 = 87
	assert.Equal(t, 87, summary.OverallScore)
}

func TestPerformanceSummary_ScopeEnforced(t *testing.T) {
	f := newFixture()
	emp := f.seedUser(t, user.RoleEmployee, nil)
	peer := f.seedUser(t, user.RoleEmployee, nil)

	_, err := f.service.PerformanceSummary(context.Background(), peer.ID, emp.ID)
	assert.ErrorIs(t, err, user.ErrAccessDenied)
}
