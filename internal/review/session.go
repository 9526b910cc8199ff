package review

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/SiphoYawe/Laurel-sub000/internal/models"
	"github.com/SiphoYawe/Laurel-sub000/internal/srs"
)

// Quality scores fed to the scheduler for the two graded responses. A skip
// never reaches the scheduler at all.
const (
	qualityCorrect = srs.QualityPerfect
	qualityWrong   = srs.QualityIncorrect
)

// State is the session lifecycle: active while cards remain, complete once
// the last card is resolved. There are no other states.
type State string

const (
	StateActive   State = "active"
	StateComplete State = "complete"
)

// EmptySessionError reports an attempt to start a session with no cards.
// Callers render it as "nothing to review right now", not as a failure.
type EmptySessionError struct{}

func (e *EmptySessionError) Error() string {
	return "cannot start a review session with no cards"
}

// InvalidStateError reports an operation invoked in the wrong session state,
// such as responding after the session completed.
type InvalidStateError struct {
	Op    string
	State State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("operation %q not valid in session state %q", e.Op, e.State)
}

// NoCurrentCardError reports a CurrentCard call on a completed session.
type NoCurrentCardError struct{}

func (e *NoCurrentCardError) Error() string {
	return "no current card: session is complete"
}

// InvalidResponseError reports a response outside {correct, wrong, skipped}.
type InvalidResponseError struct {
	Response models.ReviewResponse
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("unknown review response %q", e.Response)
}

// Session drives one sitting through an ordered, fixed batch of due cards.
// It holds no locks and performs no I/O: a session belongs to exactly one
// caller, and anything exposing it over a network must serialize access per
// session id.
type Session struct {
	profileID int64
	cards     []models.Card
	cursor    int
	results   []models.ReviewOutcome
	state     State
	summary   models.SessionSummary
	now       func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the session's time source. Tests use it to pin now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession starts a session over the given due cards, cursor at the first
// card. The card order is fixed for the session's lifetime.
func NewSession(profileID int64, cards []models.Card, opts ...Option) (*Session, error) {
	if len(cards) == 0 {
		return nil, &EmptySessionError{}
	}
	s := &Session{
		profileID: profileID,
		cards:     cards,
		results:   make([]models.ReviewOutcome, 0, len(cards)),
		state:     StateActive,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// State returns the session lifecycle state.
func (s *Session) State() State {
	return s.state
}

// TotalCards returns the fixed size of the session's card batch.
func (s *Session) TotalCards() int {
	return len(s.cards)
}

// Position returns the zero-based cursor, equal to the number of cards
// already resolved.
func (s *Session) Position() int {
	return s.cursor
}

// CurrentCard returns the card awaiting a response.
func (s *Session) CurrentCard() (models.Card, error) {
	if s.state == StateComplete {
		return models.Card{}, &NoCurrentCardError{}
	}
	return s.cards[s.cursor], nil
}

// Respond resolves the current card with the given response and returns the
// resulting outcome. Correct and wrong responses run the scheduler; a skip
// leaves the card's scheduling state exactly as it was. When the last card
// is resolved the summary is derived and the session completes.
func (s *Session) Respond(resp models.ReviewResponse) (models.ReviewOutcome, error) {
	if s.state != StateActive {
		return models.ReviewOutcome{}, &InvalidStateError{Op: "respond", State: s.state}
	}

	card := s.cards[s.cursor]
	now := s.now()
	outcome := models.ReviewOutcome{
		ID:         uuid.NewString(),
		CardID:     card.ID,
		DeckID:     card.DeckID,
		ProfileID:  s.profileID,
		Response:   resp,
		Before:     card.Schedule,
		ReviewedAt: now,
	}

	switch resp {
	case models.ResponseCorrect, models.ResponseWrong:
		quality := qualityCorrect
		if resp == models.ResponseWrong {
			quality = qualityWrong
		}
		next, err := srs.ComputeNextSchedule(now, quality, card.Schedule)
		if err != nil {
			return models.ReviewOutcome{}, err
		}
		outcome.Quality = quality
		outcome.After = next
	case models.ResponseSkipped:
		// Skips preserve the card's interval level untouched.
		outcome.Quality = -1
		outcome.After = card.Schedule
	default:
		return models.ReviewOutcome{}, &InvalidResponseError{Response: resp}
	}

	s.results = append(s.results, outcome)
	s.cursor++
	if s.cursor == len(s.cards) {
		s.summary = buildSummary(s.results)
		s.state = StateComplete
	}
	return outcome, nil
}

// Summary returns the derived aggregate once the session is complete. It is
// an idempotent read: nothing is recomputed.
func (s *Session) Summary() (models.SessionSummary, error) {
	if s.state != StateComplete {
		return models.SessionSummary{}, &InvalidStateError{Op: "summary", State: s.state}
	}
	return s.summary, nil
}

// Results returns a copy of the outcomes accumulated so far.
func (s *Session) Results() []models.ReviewOutcome {
	out := make([]models.ReviewOutcome, len(s.results))
	copy(out, s.results)
	return out
}

// Restart returns a completed session to active, reusing the same card list
// with the cursor reset and the results cleared. Cards are not re-fetched.
func (s *Session) Restart() {
	s.cursor = 0
	s.results = s.results[:0]
	s.summary = models.SessionSummary{}
	s.state = StateActive
}

func buildSummary(results []models.ReviewOutcome) models.SessionSummary {
	sum := models.SessionSummary{
		TotalCards: len(results),
		Outcomes:   append([]models.ReviewOutcome(nil), results...),
	}
	for _, r := range results {
		switch r.Response {
		case models.ResponseCorrect:
			sum.CorrectCount++
		case models.ResponseWrong:
			sum.WrongCount++
		case models.ResponseSkipped:
			sum.SkippedCount++
		}
	}

	// Skipped-only sessions report 0% accuracy, never a division by zero.
	if graded := sum.CorrectCount + sum.WrongCount; graded > 0 {
		sum.Accuracy = int(math.Round(float64(sum.CorrectCount) / float64(graded) * 100))
	}
	sum.MasteryGain = int(math.Round(float64(sum.CorrectCount) / float64(sum.TotalCards) * 10))
	return sum
}
