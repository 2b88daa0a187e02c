package notification

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/varoOP/seasonal/internal/domain"
)

// Service is a composite notification service that can send notifications
// through multiple channels
type Service struct {
	discord *DiscordService
}

// NewService creates a new notification service
func NewService(log zerolog.Logger, webhookURL string) domain.NotificationService {
	var discord *DiscordService
	if webhookURL != "" {
		discord = NewDiscordService(log, webhookURL)
	}

	return &Service{
		discord: discord,
	}
}

// SendChange sends change notifications through all configured channels
func (s *Service) SendChange(ctx context.Context, change domain.ImageChange) error {
	if s.discord != nil {
		if err := s.discord.SendChange(ctx, change); err != nil {
			return err
		}
	}
	return nil
}
