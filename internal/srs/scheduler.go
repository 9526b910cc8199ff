package srs

import (
	"fmt"
	"math"
	"time"

	"github.com/SiphoYawe/Laurel-sub000/internal/models"
)

// Quality grades a recall attempt on the SM-2 scale.
const (
	QualityBlackout          = 0 // complete blackout
	QualityIncorrect         = 1 // incorrect, remembered on seeing the answer
	QualityIncorrectFamiliar = 2 // incorrect but the answer felt easy to recall
	QualityCorrectDifficult  = 3 // correct with serious difficulty
	QualityCorrectHesitation = 4 // correct after hesitation
	QualityPerfect           = 5 // perfect recall
)

const (
	// MinEaseFactor is the SM-2 floor; ease never drops below it.
	MinEaseFactor = 1.3
	// DefaultEaseFactor is the ease assigned to freshly created cards.
	DefaultEaseFactor = 2.5
)

// InvalidQualityError reports a quality score outside [0,5]. Out-of-range
// quality is a caller bug and is never clamped: silent clamping would
// corrupt the ease-factor trendline.
type InvalidQualityError struct {
	Quality int
}

func (e *InvalidQualityError) Error() string {
	return fmt.Sprintf("quality %d outside valid range [0,5]", e.Quality)
}

// NewCardSchedule returns the scheduling state for a card that has never
// been reviewed: due immediately, default ease, zero interval.
func NewCardSchedule(now time.Time) models.Schedule {
	return models.Schedule{
		EaseFactor:   DefaultEaseFactor,
		IntervalDays: 0,
		Repetitions:  0,
		State:        models.CardStateNew,
		DueAt:        now,
	}
}

// ComputeNextSchedule applies one SM-2 review transition.
//
// A failed recall (quality < 3) resets repetitions to 0 and the interval to
// one day without touching the ease factor; the card moves to learning when
// it was new, otherwise to relearning. A successful recall increments
// repetitions and grows the interval through the fixed 1-day and 6-day
// steps, then by the ease factor as it stood before this review's
// adjustment. The adjusted ease is floored at MinEaseFactor and rounded to
// two decimals so it cannot drift across thousands of reviews.
//
// The function is pure: no I/O, no hidden state, safe to call from any
// number of goroutines.
func ComputeNextSchedule(now time.Time, quality int, cur models.Schedule) (models.Schedule, error) {
	if quality < QualityBlackout || quality > QualityPerfect {
		return models.Schedule{}, &InvalidQualityError{Quality: quality}
	}

	next := cur
	if quality < QualityCorrectDifficult {
		next.Repetitions = 0
		next.IntervalDays = 1
		if cur.State == models.CardStateNew {
			next.State = models.CardStateLearning
		} else {
			next.State = models.CardStateRelearning
		}
	} else {
		next.Repetitions = cur.Repetitions + 1
		switch next.Repetitions {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = 6
		default:
			next.IntervalDays = int(math.Round(float64(cur.IntervalDays) * cur.EaseFactor))
		}

		q := float64(quality)
		ease := cur.EaseFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
		if ease < MinEaseFactor {
			ease = MinEaseFactor
		}
		next.EaseFactor = ease
		next.State = models.CardStateReview
	}

	next.EaseFactor = roundEase(next.EaseFactor)
	next.DueAt = now.AddDate(0, 0, next.IntervalDays)
	return next, nil
}

func roundEase(ef float64) float64 {
	return math.Round(ef*100) / 100
}
