package sms

import (
	"VendorChat/internal/config"
	"VendorChat/internal/lib/sl"
	"context"
	"log/slog"
)

type Sender interface {
	Send(ctx context.Context, to, body string) error
	ProviderID() string
}

// NewSender picks Twilio when it is configured, then the webhook, then a
// sender that only logs.
func NewSender(conf *config.Config, logger *slog.Logger) Sender {
	if conf.Twilio.AccountSID != "" && conf.Twilio.AuthToken != "" && conf.Twilio.PhoneNumber != "" {
		return NewTwilioSender(conf.Twilio.AccountSID, conf.Twilio.AuthToken, conf.Twilio.PhoneNumber, logger)
	}
	if conf.SmsWebhook.Url != "" {
		return NewWebhookSender(conf.SmsWebhook.Url, conf.SmsWebhook.ApiKey, logger)
	}
	return NewNoopSender(logger)
}

type NoopSender struct {
	log *slog.Logger
}

func NewNoopSender(logger *slog.Logger) *NoopSender {
	return &NoopSender{log: logger.With(sl.Module("sms.noop"))}
}

func (s *NoopSender) ProviderID() string {
	return "sms-noop"
}

func (s *NoopSender) Send(_ context.Context, to, body string) error {
	s.log.With(
		sl.Secret("to", to),
		slog.Int("length", len(body)),
	).Info("sms not configured, message dropped")
	return nil
}
