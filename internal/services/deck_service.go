package services

import (
	"context"
	"strings"
	"time"

	"github.com/SiphoYawe/Laurel-sub000/internal/errors"
	"github.com/SiphoYawe/Laurel-sub000/internal/logger"
	"github.com/SiphoYawe/Laurel-sub000/internal/models"
	"github.com/SiphoYawe/Laurel-sub000/internal/repository"
)

// DeckService handles deck-related business logic
type DeckService interface {
	CreateDeck(ctx context.Context, profileID int64, name, description string, newPerDay, reviewsPerDay int) (*models.Deck, error)
	GetDeck(ctx context.Context, profileID, deckID int64) (*models.DeckWithCounts, error)
	ListDecks(ctx context.Context, profileID int64) ([]models.DeckWithCounts, error)
	UpdateDeck(ctx context.Context, profileID int64, deck models.Deck) (*models.Deck, error)
	DeleteDeck(ctx context.Context, profileID, deckID int64) error
}

type deckService struct {
	deckRepo             repository.DeckRepository
	defaultNewPerDay     int
	defaultReviewsPerDay int
}

// NewDeckService creates a new DeckService
func NewDeckService(deckRepo repository.DeckRepository, defaultNewPerDay, defaultReviewsPerDay int) DeckService {
	return &deckService{
		deckRepo:             deckRepo,
		defaultNewPerDay:     defaultNewPerDay,
		defaultReviewsPerDay: defaultReviewsPerDay,
	}
}

func (s *deckService) CreateDeck(ctx context.Context, profileID int64, name, description string, newPerDay, reviewsPerDay int) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating deck: profile_id=%d, name=%s", profileID, name)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "must not be empty")
	}
	if newPerDay <= 0 {
		newPerDay = s.defaultNewPerDay
	}
	if reviewsPerDay <= 0 {
		reviewsPerDay = s.defaultReviewsPerDay
	}

	deck := models.Deck{
		ProfileID:     profileID,
		Name:          name,
		Description:   strings.TrimSpace(description),
		NewPerDay:     newPerDay,
		ReviewsPerDay: reviewsPerDay,
	}
	id, err := s.deckRepo.Insert(ctx, deck)
	if err != nil {
		log.Error("failed to insert deck: %v", err)
		return nil, errors.NewInternalError(err)
	}

	created, err := s.deckRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to load created deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("deck created: id=%d, name=%s", id, name)
	return created, nil
}

func (s *deckService) GetDeck(ctx context.Context, profileID, deckID int64) (*models.DeckWithCounts, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting deck: deck_id=%d", deckID)

	deck, err := s.ownedDeck(ctx, profileID, deckID)
	if err != nil {
		return nil, err
	}

	counts, err := s.deckRepo.Counts(ctx, deckID, time.Now())
	if err != nil {
		log.Error("failed to count deck cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &models.DeckWithCounts{Deck: *deck, Counts: *counts}, nil
}

func (s *deckService) ListDecks(ctx context.Context, profileID int64) ([]models.DeckWithCounts, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing decks: profile_id=%d", profileID)

	decks, err := s.deckRepo.List(ctx, profileID)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, errors.NewInternalError(err)
	}

	now := time.Now()
	out := make([]models.DeckWithCounts, 0, len(decks))
	for _, d := range decks {
		counts, err := s.deckRepo.Counts(ctx, d.ID, now)
		if err != nil {
			log.Error("failed to count deck cards: %v", err)
			return nil, errors.NewInternalError(err)
		}
		out = append(out, models.DeckWithCounts{Deck: d, Counts: *counts})
	}
	return out, nil
}

func (s *deckService) UpdateDeck(ctx context.Context, profileID int64, deck models.Deck) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating deck: deck_id=%d", deck.ID)

	existing, err := s.ownedDeck(ctx, profileID, deck.ID)
	if err != nil {
		return nil, err
	}

	deck.Name = strings.TrimSpace(deck.Name)
	if deck.Name == "" {
		return nil, errors.NewValidationError("name", "must not be empty")
	}
	if deck.NewPerDay <= 0 {
		deck.NewPerDay = existing.NewPerDay
	}
	if deck.ReviewsPerDay <= 0 {
		deck.ReviewsPerDay = existing.ReviewsPerDay
	}

	if err := s.deckRepo.Update(ctx, deck); err != nil {
		log.Error("failed to update deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.deckRepo.Get(ctx, deck.ID)
}

func (s *deckService) DeleteDeck(ctx context.Context, profileID, deckID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting deck: deck_id=%d", deckID)

	if _, err := s.ownedDeck(ctx, profileID, deckID); err != nil {
		return err
	}
	if err := s.deckRepo.Delete(ctx, deckID); err != nil {
		log.Error("failed to delete deck: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("deck deleted: id=%d", deckID)
	return nil
}

func (s *deckService) ownedDeck(ctx context.Context, profileID, deckID int64) (*models.Deck, error) {
	deck, err := s.deckRepo.Get(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil || deck.ProfileID != profileID {
		return nil, errors.NewNotFoundError("deck", deckID)
	}
	return deck, nil
}
