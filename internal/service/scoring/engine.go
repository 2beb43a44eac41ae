// Package scoring computes the composite performance score. Every function
// is a pure, deterministic aggregation over a snapshot of one employee's
// goals and feedback; scores are recomputed on demand, never cached.
package scoring

import (
	"math"

	"github.com/perftrack/perf-review-backend-go/internal/domain/analytics"
	"github.com/perftrack/perf-review-backend-go/internal/domain/feedback"
	"github.com/perftrack/perf-review-backend-go/internal/domain/goal"
)

// Composite score weights: goal completion 60%, feedback rating 40%.
const (
	goalWeight     = 0.6
	feedbackWeight = 0.4
)

// GoalCompletionScore is the arithmetic mean of per-goal contributions on a
// 0-100 scale, unweighted by priority. A goal contributes
// min(current/target*100, 100); a goal with a zero target contributes 100
// when completed and 0 otherwise, so the division can never blow up.
// Returns 0 when the employee has no goals.
func GoalCompletionScore(goals []goal.Goal) float64 {
	if len(goals) == 0 {
		return 0
	}

	var sum float64
	for _, g := range goals {
		sum += goalContribution(g)
	}
	return sum / float64(len(goals))
}

func goalContribution(g goal.Goal) float64 {
	if g.TargetValue.IsZero() {
		if g.Status == goal.StatusCompleted {
			return 100
		}
		return 0
	}
	pct := g.CurrentValue.Div(g.TargetValue).InexactFloat64() * 100
	return math.Min(pct, 100)
}

// FeedbackScore maps the mean 1-5 rating onto a 0-100 scale (mean * 20).
// Returns 0 when there is no feedback.
func FeedbackScore(records []feedback.Feedback) float64 {
	if len(records) == 0 {
		return 0
	}

	var sum int
	for _, f := range records {
		sum += f.Rating
	}
	return float64(sum) / float64(len(records)) * 20
}

// OverallScore is round(goal*0.6 + feedback*0.4) as an integer percentage.
// Rounding is half-up. An employee with zero goals scores 0 regardless of
// feedback: the goal component dominates and is defined as 0 in that case.
func OverallScore(goals []goal.Goal, records []feedback.Feedback) int {
	if len(goals) == 0 {
		return 0
	}

	combined := GoalCompletionScore(goals)*goalWeight + FeedbackScore(records)*feedbackWeight
	return roundHalfUp(combined)
}

// roundHalfUp rounds to the nearest integer with .5 rounding up. Scores are
// never negative, so this matches round-half-away-from-zero.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// PromotionTier buckets a composite score into a promotion-readiness tier.
// Boundaries are inclusive on the lower bound of each tier.
func PromotionTier(score int) analytics.Tier {
	switch {
	case score >= 90:
		return analytics.TierHighlyRecommended
	case score >= 75:
		return analytics.TierRecommended
	case score >= 60:
		return analytics.TierConsider
	default:
		return analytics.TierNotReady
	}
}

// MeanRating is the average feedback rating on the raw 1-5 scale, nil when
// there is no feedback. Shared by the summary and reporting paths.
func MeanRating(records []feedback.Feedback) *float64 {
	if len(records) == 0 {
		return nil
	}
	var sum int
	for _, f := range records {
		sum += f.Rating
	}
	mean := float64(sum) / float64(len(records))
	return &mean
}
