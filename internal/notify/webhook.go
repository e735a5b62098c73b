package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"grandline-arena/internal/config"
	"grandline-arena/internal/constants"
)

// WebhookNotifier POSTs notifications to the chat transport's webhook.
// When no webhook is configured it degrades to logging the message, which
// keeps local development usable without a transport running.
type WebhookNotifier struct {
	url    string
	client *fasthttp.Client
	logger zerolog.Logger
}

type webhookPayload struct {
	ParticipantID string `json:"participant_id"`
	Text          string `json:"text"`
}

func NewWebhookNotifier(cfg *config.Config, logger zerolog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url: cfg.WebhookURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.NotifyTimeout,
			WriteTimeout:        constants.NotifyTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
	}
}

func (n *WebhookNotifier) Notify(ctx context.Context, participantID, text string) {
	if n.url == "" {
		n.logger.Info().
			Str("participant_id", participantID).
			Str("text", text).
			Msg("notification (no webhook configured)")
		return
	}

	body, err := json.Marshal(webhookPayload{ParticipantID: participantID, Text: text})
	if err != nil {
		n.logger.Error().Err(err).Str("participant_id", participantID).Msg("failed to encode notification")
		return
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(n.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	deadline := time.Now().Add(constants.NotifyTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	// Best effort only: failures are logged and swallowed, match state is
	// the source of truth.
	if err := n.client.DoDeadline(req, resp, deadline); err != nil {
		n.logger.Warn().Err(err).Str("participant_id", participantID).Msg("notification delivery failed")
		return
	}
	if resp.StatusCode() >= 300 {
		n.logger.Warn().
			Int("status", resp.StatusCode()).
			Str("participant_id", participantID).
			Msg("notification rejected by webhook")
	}
}
