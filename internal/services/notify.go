package services

import (
	"fmt"
	"time"

	"github.com/fencetrade/signalboard/internal/config"
	"github.com/fencetrade/signalboard/internal/logger"
	"github.com/fencetrade/signalboard/internal/models"
	"github.com/go-resty/resty/v2"
)

// NotifyService delivers verification notifications to the configured
// Discord webhook. Delivery is best effort: failures are logged and
// never surfaced to the submitter, and a short client timeout keeps
// the webhook from stalling the response path.
type NotifyService struct {
	client *resty.Client
	url    string
}

// NewNotifyService creates a new notify service
func NewNotifyService(cfg config.WebhookConfig) *NotifyService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NotifyService{
		client: resty.New().SetTimeout(timeout),
		url:    cfg.URL,
	}
}

// NotifyVerification sends the new-request embed to the webhook. When
// no URL is configured the notification is logged locally instead.
func (s *NotifyService) NotifyVerification(req *models.PendingRequest) error {
	if s.url == "" {
		logger.WithComponent("notify").WithFields(logger.Fields{
			"email":   req.Email,
			"name":    req.Name,
			"discord": req.DiscordUsername,
		}).Info("webhook URL not set, logging verification request locally")
		return nil
	}

	discordUser := req.DiscordUsername
	if discordUser == "" {
		discordUser = "N/A"
	}

	payload := map[string]interface{}{
		"embeds": []map[string]interface{}{
			{
				"title": "New Verification Request",
				"color": 0x06b6d4,
				"fields": []map[string]interface{}{
					{"name": "Name", "value": req.Name, "inline": true},
					{"name": "Email", "value": req.Email, "inline": true},
					{"name": "Discord User", "value": discordUser, "inline": true},
					{"name": "Time", "value": time.Now().UTC().Format(time.RFC3339)},
				},
			},
		},
	}

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
