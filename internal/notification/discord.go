package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/seasonal/internal/domain"
)

// DiscordService implements NotificationService for Discord webhooks
type DiscordService struct {
	log        zerolog.Logger
	webhookURL string
	httpClient *http.Client
}

// NewDiscordService creates a new Discord notification service
func NewDiscordService(log zerolog.Logger, webhookURL string) *DiscordService {
	return &DiscordService{
		log:        log.With().Str("module", "notification").Str("type", "discord").Logger(),
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

var actionColors = map[domain.ChangeAction]int{
	domain.ChangeAdded:   0x00ff00, // Green
	domain.ChangeUpdated: 0x3498db, // Blue
	domain.ChangeToggled: 0xf1c40f, // Yellow
	domain.ChangeDeleted: 0xff0000, // Red
}

// SendChange posts an embed describing an administrative change
func (s *DiscordService) SendChange(ctx context.Context, change domain.ImageChange) error {
	if s.webhookURL == "" {
		return nil
	}

	embed := discordEmbed{
		Title:     fmt.Sprintf("Seasonal image %d %s", change.ID, change.Action),
		Color:     actionColors[change.Action],
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if img := change.Image; img != nil {
		embed.Description = img.Description
		embed.Fields = []discordField{
			{
				Name:   "Window",
				Value:  fmt.Sprintf("%s → %s", img.StartDate(), img.EndDate()),
				Inline: true,
			},
			{
				Name:   "Priority",
				Value:  fmt.Sprintf("%d", img.Priority),
				Inline: true,
			},
			{
				Name:   "Enabled",
				Value:  fmt.Sprintf("%t", img.Enabled),
				Inline: true,
			},
			{
				Name:   "Image",
				Value:  fmt.Sprintf("%s (%s)", img.ImagePath, img.Position),
				Inline: false,
			},
		}
	}

	payload := discordWebhook{
		Embeds: []discordEmbed{embed},
	}

	return s.sendWebhook(ctx, payload)
}

// sendWebhook sends a webhook payload to Discord
func (s *DiscordService) sendWebhook(ctx context.Context, payload discordWebhook) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal webhook payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return errors.Wrap(err, "failed to create webhook request")
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to send webhook request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook request failed with status %d", resp.StatusCode)
	}

	s.log.Debug().Msg("Discord notification sent successfully")
	return nil
}

// discordWebhook represents a Discord webhook payload
type discordWebhook struct {
	Embeds []discordEmbed `json:"embeds"`
}

// discordEmbed represents a Discord embed
type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Color       int            `json:"color"`
	Timestamp   string         `json:"timestamp,omitempty"`
	Fields      []discordField `json:"fields,omitempty"`
}

// discordField represents a Discord embed field
type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}
