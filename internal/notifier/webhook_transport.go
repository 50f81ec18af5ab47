package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/aleister1102/outboundwatch/internal/common/errorwrapper"
	"github.com/aleister1102/outboundwatch/internal/config"
	"github.com/aleister1102/outboundwatch/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// WebhookTransport posts notifications to a Discord-compatible webhook as embeds.
// Recipients are ignored: the webhook's channel is the audience.
type WebhookTransport struct {
	webhookURL     string
	mentionRoleIDs []string
	httpClient     *http.Client
	limiter        *rate.Limiter
	logger         zerolog.Logger
}

// NewWebhookTransport creates a webhook transport from the notification settings.
func NewWebhookTransport(cfg config.NotificationConfig, httpClient *http.Client, logger zerolog.Logger) (*WebhookTransport, error) {
	moduleLogger := logger.With().Str("component", "WebhookTransport").Logger()

	if cfg.WebhookURL != "" {
		if _, err := url.ParseRequestURI(cfg.WebhookURL); err != nil {
			return nil, errorwrapper.NewValidationError("webhook_url", cfg.WebhookURL, "invalid webhook URL")
		}
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.WebhookTimeout()}
	}

	return &WebhookTransport{
		webhookURL:     cfg.WebhookURL,
		mentionRoleIDs: cfg.MentionRoleIDs,
		httpClient:     httpClient,
		limiter:        rate.NewLimiter(rate.Every(WebhookRateInterval), WebhookRateBurst),
		logger:         moduleLogger,
	}, nil
}

func (wt *WebhookTransport) Name() string {
	return TransportWebhook
}

func (wt *WebhookTransport) Deliver(ctx context.Context, n models.Notification) error {
	if wt.webhookURL == "" {
		return errorwrapper.ErrTransportDisabled
	}

	if err := wt.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("webhook rate limiter: %w", err)
	}

	payloadJSON, err := json.Marshal(wt.buildPayload(n))
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("payload_json", string(payloadJSON)); err != nil {
		return fmt.Errorf("failed to write payload_json to multipart: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wt.webhookURL, body)
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := wt.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("webhook notification failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	wt.logger.Debug().Int("status_code", resp.StatusCode).Str("subject", n.Subject).Msg("Webhook accepted notification")
	return nil
}

func (wt *WebhookTransport) buildPayload(n models.Notification) models.DiscordMessagePayload {
	embed := NewDiscordEmbedBuilder().
		WithTitle(n.Subject).
		WithDescription(n.Body).
		WithColor(severityColor(n.Severity)).
		WithTimestamp(n.CreatedAt).
		WithFooter(EmbedFooterText).
		AddField("Process", n.Process, true).
		AddField("Step", n.Step, true).
		AddField("Severity", n.Severity.String(), true).
		AddField("Audience", string(n.Audience), true).
		Build()

	payload := models.DiscordMessagePayload{
		Username: WebhookUsername,
		Embeds:   []models.DiscordEmbed{embed},
	}

	if n.Severity == models.SeverityCritical && len(wt.mentionRoleIDs) > 0 {
		mentions := make([]string, 0, len(wt.mentionRoleIDs))
		for _, id := range wt.mentionRoleIDs {
			mentions = append(mentions, fmt.Sprintf("<@&%s>", id))
		}
		payload.Content = strings.Join(mentions, " ")
		payload.AllowedMentions = &models.AllowedMentions{Roles: wt.mentionRoleIDs}
	}
	return payload
}
