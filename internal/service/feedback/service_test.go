package feedback

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perftrack/perf-review-backend-go/internal/domain/feedback"
	"github.com/perftrack/perf-review-backend-go/internal/domain/user"
	"github.com/perftrack/perf-review-backend-go/internal/pkg/validator"
	"github.com/perftrack/perf-review-backend-go/internal/repository/memory"
	"github.com/perftrack/perf-review-backend-go/internal/service/access"
)

type fixture struct {
	store   *memory.Store
	users   user.Repository
	service feedback.Service
}

func newFixture() *fixture {
	store := memory.NewStore()
	users := store.Users()
	evaluator := access.NewEvaluator(users)
	return &fixture{
		store:   store,
		users:   users,
		service: NewFeedbackService(store.Feedback(), users, evaluator),
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

func createReq(employeeID string, rating int) feedback.CreateFeedbackRequest {
	return feedback.CreateFeedbackRequest{
		EmployeeID: employeeID,
		Rating:     rating,
		Comments:   "Solid quarter",
	}
}

func TestCreate_ManagerForReport(t *testing.T) {
	f := newFixture()
	manager := f.seedUser(t, user.RoleManager, nil)
	report := f.seedUser(t, user.RoleEmployee, &manager.ID)

	fb, err := f.service.Create(context.Background(), manager.ID, createReq(report.ID, 4))
	require.NoError(t, err)

	assert.Equal(t, report.ID, fb.EmployeeID)
	assert.Equal(t, manager.ID, fb.ManagerID)
	assert.Equal(t, feedback.TypeGeneral, fb.FeedbackType)
}

func TestCreate_ManagerSelfFeedbackAllowed(t *testing.T) {
	f := newFixture()
	manager := f.seedUser(t, user.RoleManager, nil)

	fb, err := f.service.Create(context.Background(), manager.ID, createReq(manager.ID, 5))
	require.NoError(t, err)
	assert.Equal(t, manager.ID, fb.EmployeeID)
	assert.Equal(t, manager.ID, fb.ManagerID)
}

func TestCreate_ManagerDeniedOutsideScope(t *testing.T) {
	f := newFixture()
	manager := f.seedUser(t, user.RoleManager, nil)
	unrelated := f.seedUser(t, user.RoleEmployee, nil)

	_, err := f.service.Create(context.Background(), manager.ID, createReq(unrelated.ID, 4))
	assert.ErrorIs(t, err, feedback.ErrOutsideScope)
}

func TestCreate_UnknownEmployee(t *testing.T) {
	f := newFixture()
	admin := f.seedUser(t, user.RoleAdmin, nil)

	_, err := f.service.Create(context.Background(), admin.ID, createReq(uuid.NewString(), 4))
	assert.ErrorIs(t, err, feedback.ErrEmployeeNotFound)
}

func TestCreate_EmployeeDenied(t *testing.T) {
	f := newFixture()
	emp := f.seedUser(t, user.RoleEmployee, nil)

	_, err := f.service.Create(context.Background(), emp.ID, createReq(emp.ID, 4))
	assert.ErrorIs(t, err, feedback.ErrOutsideScope)
}

func TestCreate_RejectsBadRating(t *testing.T) {
	f := newFixture()
	manager := f.seedUser(t, user.RoleManager, nil)
	report := f.seedUser(t, user.RoleEmployee, &manager.ID)

	for _, rating := range []int{0, 6, -1} {
		_, err := f.service.Create(context.Background(), manager.ID, createReq(report.ID, rating))
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs, "rating %d should fail validation", rating)
	}
}

func TestUpdate_AuthorOnly(t *testing.T) {
	f := newFixture()
	author := f.seedUser(t, user.RoleManager, nil)
	report := f.seedUser(t, user.RoleEmployee, &author.ID)
	otherManager := f.seedUser(t, user.RoleManager, nil)
	admin := f.seedUser(t, user.RoleAdmin, nil)
	ctx := context.Background()

	fb, err := f.service.Create(ctx, author.ID, createReq(report.ID, 3))
	require.NoError(t, err)

	rating := 5
	updated, err := f.service.Update(ctx, author.ID, feedback.UpdateFeedbackRequest{ID: fb.ID, Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)

	// Neither another manager nor an admin can rewrite someone else's words.
	_, err = f.service.Update(ctx, otherManager.ID, feedback.UpdateFeedbackRequest{ID: fb.ID, Rating: &rating})
	assert.ErrorIs(t, err, feedback.ErrNotAuthor)

	_, err = f.service.Update(ctx, admin.ID, feedback.UpdateFeedbackRequest{ID: fb.ID, Rating: &rating})
	assert.ErrorIs(t, err, feedback.ErrNotAuthor)
}

func TestUpdate_NoFields(t *testing.T) {
	f := newFixture()
	author := f.seedUser(t, user.RoleManager, nil)
	report := f.seedUser(t, user.RoleEmployee, &author.ID)
	ctx := context.Background()

	fb, err := f.service.Create(ctx, author.ID, createReq(report.ID, 3))
	require.NoError(t, err)

	_, err = f.service.Update(ctx, author.ID, feedback.UpdateFeedbackRequest{ID: fb.ID})
	assert.ErrorIs(t, err, feedback.ErrNoFieldsToUpdate)
}

func TestDelete_AuthorOrAdmin(t *testing.T) {
	f := newFixture()
	author := f.seedUser(t, user.RoleManager, nil)
	report := f.seedUser(t, user.RoleEmployee, &author.ID)
	otherManager := f.seedUser(t, user.RoleManager, nil)
	admin := f.seedUser(t, user.RoleAdmin, nil)
	ctx := context.Background()

	first, err := f.service.Create(ctx, author.ID, createReq(report.ID, 3))
	require.NoError(t, err)
	second, err := f.service.Create(ctx, author.ID, createReq(report.ID, 4))
	require.NoError(t, err)

	// A manager who is not the author gets refused even for a subject they
	// could otherwise see.
	err = f.service.Delete(ctx, otherManager.ID, first.ID)
	assert.ErrorIs(t, err, feedback.ErrNotAuthor)

	require.NoError(t, f.service.Delete(ctx, author.ID, first.ID))
	require.NoError(t, f.service.Delete(ctx, admin.ID, second.ID))

	_, err = f.service.Get(ctx, author.ID, first.ID)
	assert.ErrorIs(t, err, feedback.ErrFeedbackNotFound)
}

func TestGet_SubjectCanReadOwn(t *testing.T) {
	f := newFixture()
	manager := f.seedUser(t, user.RoleManager, nil)
	report := f.seedUser(t, user.RoleEmployee, &manager.ID)
	peer := f.seedUser(t, user.RoleEmployee, nil)
	ctx := context.Background()

	fb, err := f.service.Create(ctx, manager.ID, createReq(report.ID, 4))
	require.NoError(t, err)

	got, err := f.service.Get(ctx, report.ID, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, fb.ID, got.ID)

	_, err = f.service.Get(ctx, peer.ID, fb.ID)
	assert.ErrorIs(t, err, user.ErrAccessDenied)
}

func TestList_ScopedToCaller(t *testing.T) {
	f := newFixture()
	manager := f.seedUser(t, user.RoleManager, nil)
	report := f.seedUser(t, user.RoleEmployee, &manager.ID)
	otherManager := f.seedUser(t, user.RoleManager, nil)
	otherReport := f.seedUser(t, user.RoleEmployee, &otherManager.ID)
	admin := f.seedUser(t, user.RoleAdmin, nil)
	ctx := context.Background()

	_, err := f.service.Create(ctx, manager.ID, createReq(report.ID, 4))
	require.NoError(t, err)
	_, err = f.service.Create(ctx, otherManager.ID, createReq(otherReport.ID, 2))
	require.NoError(t, err)

	mine, err := f.service.List(ctx, manager.ID, feedback.ListFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, report.ID, mine[0].EmployeeID)

	own, err := f.service.List(ctx, report.ID, feedback.ListFilter{})
	require.NoError(t, err)
	require.Len(t, own, 1)

	everything, err := f.service.List(ctx, admin.ID, feedback.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, everything, 2)
}

func TestSummarize(t *testing.T) {
	f := newFixture()
	manager := f.seedUser(t, user.RoleManager, nil)
	report := f.seedUser(t, user.RoleEmployee, &manager.ID)
	ctx := context.Background()

	for _, rating := range []int{5, 4, 4, 2} {
		_, err := f.service.Create(ctx, manager.ID, createReq(report.ID, rating))
		require.NoError(t, err)
	}

	summary, err := f.service.Summarize(ctx, report.ID, report.ID)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalFeedback)
	assert.InDelta(t, 3.75, summary.AverageRating, 1e-9)
	assert.Equal(t, 1, summary.FiveStarCount)
	assert.Equal(t, 2, summary.FourStarCount)
	assert.Equal(t, 0, summary.ThreeStarCount)
	assert.Equal(t, 1, summary.TwoStarCount)
	assert.Equal(t, 0, summary.OneStarCount)
	require.NotNil(t, summary.FirstFeedback)
	require.NotNil(t, summary.LatestFeedback)
	assert.False(t, summary.LatestFeedback.Before(*summary.FirstFeedback))
}

func TestSummarize_EmptySet(t *testing.T) {
	f := newFixture()
	emp := f.seedUser(t, user.RoleEmployee, nil)

	summary, err := f.service.Summarize(context.Background(), emp.ID, emp.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalFeedback)
	assert.Zero(t, summary.AverageRating)
	assert.Nil(t, summary.FirstFeedback)
	assert.Nil(t, summary.LatestFeedback)
}

func TestSummarize_UnknownEmployee(t *testing.T) {
	f := newFixture()
	admin := f.seedUser(t, user.RoleAdmin, nil)

	_, err := f.service.Summarize(context.Background(), admin.ID, uuid.NewString())
	assert.ErrorIs(t, err, feedback.ErrEmployeeNotFound)
}
