package services

import (
	"context"
	"strings"

	"github.com/SiphoYawe/Laurel-sub000/internal/coach"
	"github.com/SiphoYawe/Laurel-sub000/internal/errors"
	"github.com/SiphoYawe/Laurel-sub000/internal/logger"
)

// CoachService handles chat coaching business logic
type CoachService interface {
	Chat(ctx context.Context, profileID int64, message string) (string, error)
}

type coachService struct {
	provider coach.Provider
}

// NewCoachService creates a new CoachService
func NewCoachService(provider coach.Provider) CoachService {
	return &coachService{provider: provider}
}

func (s *coachService) Chat(ctx context.Context, profileID int64, message string) (string, error) {
	log := logger.FromContext(ctx)

	message = strings.TrimSpace(message)
	if message == "" {
		return "", errors.NewValidationError("message", "must not be empty")
	}
	log.Debug("coach chat: profile_id=%d, len=%d", profileID, len(message))

	reply, err := s.provider.Reply(ctx, profileID, message)
	if err != nil {
		log.Error("coach provider failed: %v", err)
		return "", errors.NewInternalError(err)
	}
	return reply, nil
}
