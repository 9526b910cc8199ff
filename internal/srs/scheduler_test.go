package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SiphoYawe/Laurel-sub000/internal/models"
	"github.com/SiphoYawe/Laurel-sub000/internal/srs"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNewCardSchedule(t *testing.T) {
	sched := srs.NewCardSchedule(fixedNow)

	assert.Equal(t, srs.DefaultEaseFactor, sched.EaseFactor)
	assert.Equal(t, 0, sched.IntervalDays)
	assert.Equal(t, 0, sched.Repetitions)
	assert.Equal(t, models.CardStateNew, sched.State)
	assert.Equal(t, fixedNow, sched.DueAt, "new cards are due immediately")
}

func TestComputeNextSchedule_FirstSuccessfulReview(t *testing.T) {
	cur := srs.NewCardSchedule(fixedNow)

	next, err := srs.ComputeNextSchedule(fixedNow, srs.QualityPerfect, cur)
	require.NoError(t, err)

	assert.Equal(t, 1, next.Repetitions)
	assert.Equal(t, 1, next.IntervalDays, "first success uses the fixed 1-day step")
	assert.Equal(t, 2.6, next.EaseFactor, "quality 5 raises ease by 0.1")
	assert.Equal(t, models.CardStateReview, next.State)
	assert.Equal(t, fixedNow.AddDate(0, 0, 1), next.DueAt)
}

func TestComputeNextSchedule_SecondSuccessfulReview(t *testing.T) {
	cur := models.Schedule{
		EaseFactor:   2.6,
		IntervalDays: 1,
		Repetitions:  1,
		State:        models.CardStateReview,
	}

	next, err := srs.ComputeNextSchedule(fixedNow, srs.QualityPerfect, cur)
	require.NoError(t, err)

	assert.Equal(t, 2, next.Repetitions)
	assert.Equal(t, 6, next.IntervalDays, "second success uses the fixed 6-day step")
	assert.Equal(t, 2.7, next.EaseFactor)
	assert.Equal(t, fixedNow.AddDate(0, 0, 6), next.DueAt)
}

func TestComputeNextSchedule_ThirdReviewMultipliesByPriorEase(t *testing.T) {
	cur := models.Schedule{
		EaseFactor:   2.7,
		IntervalDays: 6,
		Repetitions:  2,
		State:        models.CardStateReview,
	}

	next, err := srs.ComputeNextSchedule(fixedNow, srs.QualityPerfect, cur)
	require.NoError(t, err)

	assert.Equal(t, 3, next.Repetitions)
	// 6 * 2.7 = 16.2, rounded to 16; the ease used is the one before this
	// review's adjustment.
	assert.Equal(t, 16, next.IntervalDays)
	assert.Equal(t, 2.8, next.EaseFactor)
}

func TestComputeNextSchedule_FailureResetsProgress(t *testing.T) {
	cur := models.Schedule{
		EaseFactor:   2.7,
		IntervalDays: 16,
		Repetitions:  3,
		State:        models.CardStateReview,
	}

	next, err := srs.ComputeNextSchedule(fixedNow, srs.QualityIncorrect, cur)
	require.NoError(t, err)

	assert.Equal(t, 0, next.Repetitions, "failure resets the repetition streak")
	assert.Equal(t, 1, next.IntervalDays, "failure resets the interval to one day")
	assert.Equal(t, 2.7, next.EaseFactor, "failure never touches the ease factor")
	assert.Equal(t, models.CardStateRelearning, next.State)
	assert.Equal(t, fixedNow.AddDate(0, 0, 1), next.DueAt)
}

func TestComputeNextSchedule_FailureOnNewCardEntersLearning(t *testing.T) {
	cur := srs.NewCardSchedule(fixedNow)

	next, err := srs.ComputeNextSchedule(fixedNow, srs.QualityBlackout, cur)
	require.NoError(t, err)

	assert.Equal(t, models.CardStateLearning, next.State)
	assert.Equal(t, srs.DefaultEaseFactor, next.EaseFactor)
}

func TestComputeNextSchedule_EaseAdjustments(t *testing.T) {
	tests := []struct {
		name     string
		quality  int
		ease     float64
		expected float64
	}{
		{name: "perfect adds 0.10", quality: 5, ease: 2.5, expected: 2.6},
		{name: "hesitation keeps ease", quality: 4, ease: 2.5, expected: 2.5},
		{name: "difficult subtracts 0.14", quality: 3, ease: 2.5, expected: 2.36},
		{name: "floor at 1.3", quality: 3, ease: 1.3, expected: 1.3},
		{name: "floor applies after subtraction", quality: 3, ease: 1.41, expected: 1.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := models.Schedule{
				EaseFactor:   tt.ease,
				IntervalDays: 6,
				Repetitions:  2,
				State:        models.CardStateReview,
			}
			next, err := srs.ComputeNextSchedule(fixedNow, tt.quality, cur)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, next.EaseFactor, 1e-9)
		})
	}
}

func TestComputeNextSchedule_InvalidQuality(t *testing.T) {
	cur := srs.NewCardSchedule(fixedNow)

	for _, q := range []int{-1, 6, 42} {
		_, err := srs.ComputeNextSchedule(fixedNow, q, cur)
		require.Error(t, err, "quality %d must be rejected", q)

		var invalid *srs.InvalidQualityError
		assert.ErrorAs(t, err, &invalid)
		assert.Equal(t, q, invalid.Quality)
	}
}

func TestComputeNextSchedule_EaseNeverBelowFloor(t *testing.T) {
	sched := models.Schedule{
		EaseFactor:   srs.DefaultEaseFactor,
		IntervalDays: 6,
		Repetitions:  2,
		State:        models.CardStateReview,
	}

	// Hammer the card with barely-passing reviews; ease must converge on the
	// floor and stay there.
	for i := 0; i < 50; i++ {
		next, err := srs.ComputeNextSchedule(fixedNow, srs.QualityCorrectDifficult, sched)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, next.EaseFactor, srs.MinEaseFactor)
		sched = next
	}
	assert.Equal(t, srs.MinEaseFactor, sched.EaseFactor)
}

func TestComputeNextSchedule_IntervalGrowsPastFixedSteps(t *testing.T) {
	sched := srs.NewCardSchedule(fixedNow)
	now := fixedNow

	prev := 0
	for i := 0; i < 10; i++ {
		next, err := srs.ComputeNextSchedule(now, srs.QualityCorrectHesitation, sched)
		require.NoError(t, err)

		if next.Repetitions > 2 {
			assert.Greater(t, next.IntervalDays, prev, "interval must grow once past the fixed steps")
		}
		prev = next.IntervalDays
		now = next.DueAt
		sched = next
	}
}

func TestComputeNextSchedule_StateAlwaysValid(t *testing.T) {
	states := []models.CardState{
		models.CardStateNew,
		models.CardStateLearning,
		models.CardStateReview,
		models.CardStateRelearning,
	}

	for _, state := range states {
		for q := 0; q <= 5; q++ {
			cur := models.Schedule{
				EaseFactor:   srs.DefaultEaseFactor,
				IntervalDays: 3,
				Repetitions:  1,
				State:        state,
			}
			next, err := srs.ComputeNextSchedule(fixedNow, q, cur)
			require.NoError(t, err)
			assert.True(t, next.State.Valid(), "state=%s quality=%d produced invalid state %q", state, q, next.State)
		}
	}
}

func TestComputeNextSchedule_IsPure(t *testing.T) {
	cur := models.Schedule{
		EaseFactor:   2.5,
		IntervalDays: 6,
		Repetitions:  2,
		State:        models.CardStateReview,
		DueAt:        fixedNow,
	}
	snapshot := cur

	first, err := srs.ComputeNextSchedule(fixedNow, srs.QualityPerfect, cur)
	require.NoError(t, err)
	second, err := srs.ComputeNextSchedule(fixedNow, srs.QualityPerfect, cur)
	require.NoError(t, err)

	assert.Equal(t, snapshot, cur, "input schedule must not be mutated")
	assert.Equal(t, first, second, "same inputs must give the same schedule")
}
