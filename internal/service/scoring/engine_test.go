package scoring

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/perftrack/perf-review-backend-go/internal/domain/analytics"
	"github.com/perftrack/perf-review-backend-go/internal/domain/feedback"
	"github.com/perftrack/perf-review-backend-go/internal/domain/goal"
)

func makeGoal(target, current float64, status goal.Status) goal.Goal {
	return goal.Goal{
		TargetValue:  decimal.NewFromFloat(target),
		CurrentValue: decimal.NewFromFloat(current),
		Status:       status,
	}
}

func makeFeedback(ratings ...int) []feedback.Feedback {
	records := make([]feedback.Feedback, len(ratings))
	for i, r := range ratings {
		records[i] = feedback.Feedback{Rating: r}
	}
	return records
}

func TestGoalCompletionScore_NoGoals(t *testing.T) {
	assert.Equal(t, 0.0, GoalCompletionScore(nil))
	assert.Equal(t, 0.0, GoalCompletionScore([]goal.Goal{}))
}

func TestGoalCompletionScore_Mean(t *testing.T) {
	goals := []goal.Goal{
		makeGoal(10, 7, goal.StatusInProgress),  // 70
		makeGoal(85, 72, goal.StatusInProgress), // 84.70...
	}
	assert.InDelta(t, 77.35, GoalCompletionScore(goals), 0.01)
}

func TestGoalCompletionScore_CapsAtHundred(t *testing.T) {
	goals := []goal.Goal{
		makeGoal(10, 25, goal.StatusCompleted), // capped at 100
	}
	assert.Equal(t, 100.0, GoalCompletionScore(goals))
}

func TestGoalCompletionScore_ZeroTarget(t *testing.T) {
	completed := makeGoal(0, 0, goal.StatusCompleted)
	inProgress := makeGoal(0, 5, goal.StatusInProgress)

	assert.Equal(t, 100.0, GoalCompletionScore([]goal.Goal{completed}))
	assert.Equal(t, 0.0, GoalCompletionScore([]goal.Goal{inProgress}))
}

func TestFeedbackScore(t *testing.T) {
	assert.Equal(t, 0.0, FeedbackScore(nil))
	assert.Equal(t, 80.0, FeedbackScore(makeFeedback(4, 4)))
	assert.Equal(t, 100.0, FeedbackScore(makeFeedback(5, 5, 5)))
	assert.InDelta(t, 66.66, FeedbackScore(makeFeedback(3, 4, 3)), 0.01)
}

func TestOverallScore_ZeroGoalsDominates(t *testing.T) {
	// Zero goals means zero overall score even with perfect feedback.
	assert.Equal(t, 0, OverallScore(nil, makeFeedback(5, 5, 5, 5)))
}

func TestOverallScore_Composite(t *testing.T) {
	goals := []goal.Goal{
		makeGoal(10, 7, goal.StatusInProgress),
		makeGoal(85, 72, goal.StatusInProgress),
	}
	records := makeFeedback(4, 4)

	// goal 77.35 * 0.6 + feedback 80 * 0.4 = 78.41 -> 78
	assert.Equal(t, 78, OverallScore(goals, records))
}

func TestOverallScore_RoundsHalfUp(t *testing.T) {
	// goal score 100, feedback 3.5*20=70: 100*0.6 + 70*0.4 = 88.0
	goals := []goal.Goal{makeGoal(10, 10, goal.StatusCompleted)}
	assert.Equal(t, 88, OverallScore(goals, makeFeedback(3, 4)))

	// 62.5*0.6 + 100*0.4 = 77.5 -> 78 (half rounds up)
	halfGoals := []goal.Goal{
		makeGoal(10, 5, goal.StatusInProgress),
		makeGoal(10, 7.5, goal.StatusInProgress),
	}
	assert.Equal(t, 78, OverallScore(halfGoals, makeFeedback(5, 5)))
}

func TestPromotionTier_Boundaries(t *testing.T) {
	cases := []struct {
		score int
		want  analytics.Tier
	}{
		{100, analytics.TierHighlyRecommended},
		{90, analytics.TierHighlyRecommended},
		{89, analytics.TierRecommended},
		{75, analytics.TierRecommended},
		{74, analytics.TierConsider},
		{60, analytics.TierConsider},
		{59, analytics.TierNotReady},
		{0, analytics.TierNotReady},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, PromotionTier(c.score), "score %d", c.score)
	}
}

func TestMeanRating(t *testing.T) {
	assert.Nil(t, MeanRating(nil))

	mean := MeanRating(makeFeedback(3, 4, 5))
	if assert.NotNil(t, mean) {
		assert.InDelta(t, 4.0, *mean, 0.001)
	}
}
