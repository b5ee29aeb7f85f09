package sms

import (
	"VendorChat/internal/lib/sl"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type sendRequest struct {
	To        string `json:"to"`
	Body      string `json:"body"`
	Watermark int64  `json:"watermark"`
}

// WebhookSender posts messages to an SMS gateway that accepts JSON.
type WebhookSender struct {
	url    string
	apiKey string
	client *http.Client
	log    *slog.Logger
}

func NewWebhookSender(url, apiKey string, logger *slog.Logger) *WebhookSender {
	return &WebhookSender{
		url:    strings.TrimSpace(url),
		apiKey: strings.TrimSpace(apiKey),
		client: &http.Client{Timeout: 10 * time.Second},
		log:    logger.With(sl.Module("sms.webhook")),
	}
}

func (s *WebhookSender) ProviderID() string {
	return "sms-webhook"
}

func (s *WebhookSender) Send(ctx context.Context, to, body string) error {
	bodyBytes, err := json.Marshal(sendRequest{
		To:        formatPhone(to),
		Body:      truncate(body, maxBodyLength),
		Watermark: time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms webhook responded with %d", resp.StatusCode)
	}

	s.log.With(
		sl.Secret("to", to),
	).Info("sms sent")
	return nil
}
