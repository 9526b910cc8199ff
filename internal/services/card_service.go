package services

import (
	"context"
	"strings"
	"time"

	"github.com/SiphoYawe/Laurel-sub000/internal/errors"
	"github.com/SiphoYawe/Laurel-sub000/internal/logger"
	"github.com/SiphoYawe/Laurel-sub000/internal/models"
	"github.com/SiphoYawe/Laurel-sub000/internal/repository"
	"github.com/SiphoYawe/Laurel-sub000/internal/srs"
)

// CardService handles card-related business logic
type CardService interface {
	CreateCard(ctx context.Context, profileID, deckID int64, front, back, hint string) (*models.Card, error)
	GetCard(ctx context.Context, profileID, cardID int64) (*models.Card, error)
	ListCards(ctx context.Context, profileID int64, filter models.CardFilter) ([]models.Card, error)
	UpdateCard(ctx context.Context, profileID, cardID int64, front, back, hint string) (*models.Card, error)
	SuspendCard(ctx context.Context, profileID, cardID int64, suspended bool) error
	DeleteCard(ctx context.Context, profileID, cardID int64) error
}

type cardService struct {
	cardRepo repository.CardRepository
	deckRepo repository.DeckRepository
}

// NewCardService creates a new CardService
func NewCardService(cardRepo repository.CardRepository, deckRepo repository.DeckRepository) CardService {
	return &cardService{cardRepo: cardRepo, deckRepo: deckRepo}
}

func (s *cardService) CreateCard(ctx context.Context, profileID, deckID int64, front, back, hint string) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating card: deck_id=%d", deckID)

	front = strings.TrimSpace(front)
	back = strings.TrimSpace(back)
	if front == "" {
		return nil, errors.NewValidationError("front", "must not be empty")
	}
	if back == "" {
		return nil, errors.NewValidationError("back", "must not be empty")
	}

	if _, err := s.ownedDeck(ctx, profileID, deckID); err != nil {
		return nil, err
	}

	card := models.Card{
		DeckID:   deckID,
		Front:    front,
		Back:     back,
		Hint:     strings.TrimSpace(hint),
		Schedule: srs.NewCardSchedule(time.Now()),
	}
	id, err := s.cardRepo.Insert(ctx, card)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return nil, errors.NewInternalError(err)
	}

	created, err := s.cardRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to load created card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("card created: id=%d, deck_id=%d", id, deckID)
	return created, nil
}

func (s *cardService) GetCard(ctx context.Context, profileID, cardID int64) (*models.Card, error) {
	return s.ownedCard(ctx, profileID, cardID)
}

func (s *cardService) ListCards(ctx context.Context, profileID int64, filter models.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing cards: deck_id=%d", filter.DeckID)

	if filter.DeckID == 0 {
		return nil, errors.NewValidationError("deck_id", "must be set")
	}
	if _, err := s.ownedDeck(ctx, profileID, filter.DeckID); err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *cardService) UpdateCard(ctx context.Context, profileID, cardID int64, front, back, hint string) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating card: card_id=%d", cardID)

	if _, err := s.ownedCard(ctx, profileID, cardID); err != nil {
		return nil, err
	}

	front = strings.TrimSpace(front)
	back = strings.TrimSpace(back)
	if front == "" {
		return nil, errors.NewValidationError("front", "must not be empty")
	}
	if back == "" {
		return nil, errors.NewValidationError("back", "must not be empty")
	}

	if err := s.cardRepo.UpdateContent(ctx, cardID, front, back, strings.TrimSpace(hint)); err != nil {
		log.Error("failed to update card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.cardRepo.Get(ctx, cardID)
}

func (s *cardService) SuspendCard(ctx context.Context, profileID, cardID int64, suspended bool) error {
	log := logger.FromContext(ctx)
	log.Debug("suspending card: card_id=%d, suspended=%v", cardID, suspended)

	if _, err := s.ownedCard(ctx, profileID, cardID); err != nil {
		return err
	}
	if err := s.cardRepo.SetSuspended(ctx, cardID, suspended); err != nil {
		log.Error("failed to set suspended: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *cardService) DeleteCard(ctx context.Context, profileID, cardID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting card: card_id=%d", cardID)

	if _, err := s.ownedCard(ctx, profileID, cardID); err != nil {
		return err
	}
	if err := s.cardRepo.Delete(ctx, cardID); err != nil {
		log.Error("failed to delete card: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("card deleted: id=%d", cardID)
	return nil
}

func (s *cardService) ownedDeck(ctx context.Context, profileID, deckID int64) (*models.Deck, error) {
	deck, err := s.deckRepo.Get(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil || deck.ProfileID != profileID {
		return nil, errors.NewNotFoundError("deck", deckID)
	}
	return deck, nil
}

func (s *cardService) ownedCard(ctx context.Context, profileID, cardID int64) (*models.Card, error) {
	card, err := s.cardRepo.Get(ctx, cardID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}
	if _, err := s.ownedDeck(ctx, profileID, card.DeckID); err != nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}
	return card, nil
}
