package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/SiphoYawe/Laurel-sub000/internal/errors"
	"github.com/SiphoYawe/Laurel-sub000/internal/gamification"
	"github.com/SiphoYawe/Laurel-sub000/internal/logger"
	"github.com/SiphoYawe/Laurel-sub000/internal/models"
	"github.com/SiphoYawe/Laurel-sub000/internal/repository"
	"github.com/SiphoYawe/Laurel-sub000/internal/review"
)

// SessionView is the client-facing snapshot of a review session. Empty is
// set when a sitting was requested but no cards are due, which the UI must
// render as "nothing to review right now", never as an error.
type SessionView struct {
	Empty      bool         `json:"empty"`
	State      review.State `json:"state,omitempty"`
	TotalCards int          `json:"total_cards,omitempty"`
	Position   int          `json:"position,omitempty"`
	Current    *models.Card `json:"current,omitempty"`
}

// RespondResult reports one resolved card. Persisted is false when the
// outcome write failed after the in-memory session advanced; the caller
// retries via RetryPersist with the same outcome, never by responding again.
type RespondResult struct {
	Outcome   models.ReviewOutcome   `json:"outcome"`
	Persisted bool                   `json:"persisted"`
	Complete  bool                   `json:"complete"`
	Summary   *models.SessionSummary `json:"summary,omitempty"`
	XPAwarded int64                  `json:"xp_awarded,omitempty"`
}

// ReviewService drives review sessions and persists their outcomes
type ReviewService interface {
	StartSession(ctx context.Context, profileID, deckID int64) (*SessionView, error)
	CurrentSession(ctx context.Context, profileID, deckID int64) (*SessionView, error)
	Respond(ctx context.Context, profileID, deckID int64, resp models.ReviewResponse, timeSeconds float64) (*RespondResult, error)
	RestartSession(ctx context.Context, profileID, deckID int64) (*SessionView, error)
	Summary(ctx context.Context, profileID, deckID int64) (*models.SessionSummary, error)
	EndSession(ctx context.Context, profileID, deckID int64) error
	RetryPersist(ctx context.Context, outcome models.ReviewOutcome, timeSeconds float64) error
}

type reviewService struct {
	cardRepo    repository.CardRepository
	deckRepo    repository.DeckRepository
	profileRepo repository.ProfileRepository
	sessionSize int

	// Sessions are in-memory and single-caller; the mutex serializes access
	// so concurrent requests for the same session cannot interleave.
	mu       sync.Mutex
	sessions map[string]*review.Session

	now func() time.Time
}

// ReviewOption configures a reviewService.
type ReviewOption func(*reviewService)

// WithClock overrides the service's time source for tests.
func WithClock(now func() time.Time) ReviewOption {
	return func(s *reviewService) {
		s.now = now
	}
}

// NewReviewService creates a new ReviewService
func NewReviewService(cardRepo repository.CardRepository, deckRepo repository.DeckRepository, profileRepo repository.ProfileRepository, sessionSize int, opts ...ReviewOption) ReviewService {
	s := &reviewService{
		cardRepo:    cardRepo,
		deckRepo:    deckRepo,
		profileRepo: profileRepo,
		sessionSize: sessionSize,
		sessions:    make(map[string]*review.Session),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func sessionKey(profileID, deckID int64) string {
	return fmt.Sprintf("%d:%d", profileID, deckID)
}

func (s *reviewService) StartSession(ctx context.Context, profileID, deckID int64) (*SessionView, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting review session: profile_id=%d, deck_id=%d", profileID, deckID)

	deck, err := s.deckRepo.Get(ctx, deckID)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil || deck.ProfileID != profileID {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey(profileID, deckID)
	if existing, ok := s.sessions[key]; ok && existing.State() == review.StateActive {
		return nil, errors.NewConflictError("an active review session already exists for this deck")
	}

	now := s.now()
	newLimit, reviewLimit, err := s.remainingLimits(ctx, deck, now)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	cards, err := s.cardRepo.DueCards(ctx, deckID, now, newLimit, reviewLimit)
	if err != nil {
		log.Error("failed to fetch due cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if s.sessionSize > 0 && len(cards) > s.sessionSize {
		cards = cards[:s.sessionSize]
	}

	sess, err := review.NewSession(profileID, cards, review.WithClock(s.now))
	if err != nil {
		// An empty due queue is a terminal empty state, not a failure.
		var empty *review.EmptySessionError
		if stderrors.As(err, &empty) {
			log.Debug("no cards due: profile_id=%d, deck_id=%d", profileID, deckID)
			delete(s.sessions, key)
			return &SessionView{Empty: true}, nil
		}
		return nil, errors.NewInternalError(err)
	}

	s.sessions[key] = sess
	log.Info("review session started: profile_id=%d, deck_id=%d, cards=%d", profileID, deckID, len(cards))
	return viewOf(sess), nil
}

// remainingLimits applies the deck's per-day intake caps against what has
// already been reviewed today.
func (s *reviewService) remainingLimits(ctx context.Context, deck *models.Deck, now time.Time) (newLimit, reviewLimit int, err error) {
	day := now.UTC().Format("2006-01-02")
	reviewed, newIntroduced, err := s.cardRepo.DailyLoad(ctx, deck.ID, day)
	if err != nil {
		return 0, 0, err
	}
	newLimit = deck.NewPerDay - newIntroduced
	reviewLimit = deck.ReviewsPerDay - reviewed
	return newLimit, reviewLimit, nil
}

func (s *reviewService) CurrentSession(ctx context.Context, profileID, deckID int64) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionKey(profileID, deckID)]
	if !ok {
		return nil, errors.NewNotFoundError("review session", sessionKey(profileID, deckID))
	}
	return viewOf(sess), nil
}

func (s *reviewService) Respond(ctx context.Context, profileID, deckID int64, resp models.ReviewResponse, timeSeconds float64) (*RespondResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("responding in session: profile_id=%d, deck_id=%d, response=%s", profileID, deckID, resp)

	if !resp.Valid() {
		return nil, errors.NewValidationError("response", "must be 'correct', 'wrong', or 'skipped'")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey(profileID, deckID)
	sess, ok := s.sessions[key]
	if !ok {
		return nil, errors.NewNotFoundError("review session", key)
	}

	outcome, err := sess.Respond(resp)
	if err != nil {
		return nil, mapEngineError(err)
	}

	result := &RespondResult{Outcome: outcome}

	// At-least-once persistence: the in-memory session already advanced, so
	// a failed write is reported for retry rather than rolled back.
	applied, perr := s.cardRepo.SaveReview(ctx, outcome, timeSeconds)
	if perr != nil {
		log.Error("failed to persist review outcome %s: %v", outcome.ID, perr)
	} else {
		result.Persisted = true
		if !applied {
			log.Debug("outcome %s was already persisted", outcome.ID)
		}
	}

	if sess.State() == review.StateComplete {
		result.Complete = true
		summary, serr := sess.Summary()
		if serr != nil {
			return nil, errors.NewInternalError(serr)
		}
		result.Summary = &summary

		xp := gamification.SessionXP(summary)
		if _, xerr := s.profileRepo.AddXP(ctx, profileID, xp); xerr != nil {
			// XP is a side reward; the session result stands regardless.
			log.Warn("failed to award xp: %v", xerr)
		} else {
			result.XPAwarded = xp
		}
		log.Info("review session complete: profile_id=%d, deck_id=%d, accuracy=%d%%", profileID, deckID, summary.Accuracy)
	}

	return result, nil
}

func (s *reviewService) RestartSession(ctx context.Context, profileID, deckID int64) (*SessionView, error) {
	log := logger.FromContext(ctx)
	log.Debug("restarting session: profile_id=%d, deck_id=%d", profileID, deckID)

	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey(profileID, deckID)
	sess, ok := s.sessions[key]
	if !ok {
		return nil, errors.NewNotFoundError("review session", key)
	}
	sess.Restart()
	return viewOf(sess), nil
}

func (s *reviewService) Summary(ctx context.Context, profileID, deckID int64) (*models.SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionKey(profileID, deckID)]
	if !ok {
		return nil, errors.NewNotFoundError("review session", sessionKey(profileID, deckID))
	}
	summary, err := sess.Summary()
	if err != nil {
		return nil, mapEngineError(err)
	}
	return &summary, nil
}

func (s *reviewService) EndSession(ctx context.Context, profileID, deckID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("ending session: profile_id=%d, deck_id=%d", profileID, deckID)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Cancellation is simply discarding the in-memory session.
	delete(s.sessions, sessionKey(profileID, deckID))
	return nil
}

func (s *reviewService) RetryPersist(ctx context.Context, outcome models.ReviewOutcome, timeSeconds float64) error {
	log := logger.FromContext(ctx)
	log.Debug("retrying outcome persistence: outcome_id=%s", outcome.ID)

	if outcome.ID == "" {
		return errors.NewValidationError("outcome.id", "must not be empty")
	}
	applied, err := s.cardRepo.SaveReview(ctx, outcome, timeSeconds)
	if err != nil {
		log.Error("retry persist failed: %v", err)
		return errors.NewInternalError(err)
	}
	if !applied {
		log.Debug("outcome %s already persisted, retry was a no-op", outcome.ID)
	}
	return nil
}

func viewOf(sess *review.Session) *SessionView {
	v := &SessionView{
		State:      sess.State(),
		TotalCards: sess.TotalCards(),
		Position:   sess.Position(),
	}
	if card, err := sess.CurrentCard(); err == nil {
		v.Current = &card
	}
	return v
}

// mapEngineError translates engine contract violations into API errors.
func mapEngineError(err error) error {
	var (
		invalidState    *review.InvalidStateError
		noCurrent       *review.NoCurrentCardError
		invalidResponse *review.InvalidResponseError
	)
	switch {
	case stderrors.As(err, &invalidState):
		return errors.NewConflictError(invalidState.Error())
	case stderrors.As(err, &noCurrent):
		return errors.NewConflictError(noCurrent.Error())
	case stderrors.As(err, &invalidResponse):
		return errors.NewValidationError("response", invalidResponse.Error())
	default:
		return errors.NewInternalError(err)
	}
}
