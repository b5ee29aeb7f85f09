package core

import (
	"VendorChat/ai/gpt"
	"VendorChat/entity"
	"VendorChat/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
)

const (
	EventNewMessage       = "new_message"
	EventBookingConfirmed = "booking_confirmed"
)

// ComposeChat checks the request against the directory and renders the
// system prompt for the vendor.
func (c *Core) ComposeChat(vendorID string, req *entity.ChatRequest) (*entity.ChatTurn, error) {
	c.mu.RLock()
	vendors := c.vendors
	c.mu.RUnlock()

	if vendors == nil {
		return nil, ErrNotReady
	}
	vendor, ok := vendors[vendorID]
	if !ok {
		return nil, ErrVendorNotFound
	}

	loc, err := ResolveLocation(req.Timezone)
	if err != nil {
		return nil, err
	}

	template, err := os.ReadFile(c.promptPath)
	if err != nil {
		return nil, fmt.Errorf("read system prompt: %w", err)
	}

	return &entity.ChatTurn{
		VendorID: vendorID,
		Vendor:   vendor,
		System:   RenderSystemPrompt(string(template), vendor, FormatDateTime(time.Now(), loc)),
		Messages: req.Messages,
	}, nil
}

// StreamChat runs the assistant for the turn and keeps the transcript.
func (c *Core) StreamChat(ctx context.Context, turn *entity.ChatTurn, w gpt.StreamWriter) error {
	if c.ass == nil {
		_ = w.Error("System is not ready")
		return ErrNotReady
	}

	if text := turn.NewUserText(); text != "" {
		c.record(ctx, entity.NewTranscriptEntry(turn.VendorID, entity.RoleUser, text))
	}

	answer, err := c.ass.Converse(ctx, turn, w)
	if answer != "" {
		// detached from the request, the client may already be gone
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		c.record(saveCtx, entity.NewTranscriptEntry(turn.VendorID, entity.RoleAssistant, answer))
	}
	if err != nil {
		return fmt.Errorf("converse: %w", err)
	}
	return nil
}

func (c *Core) record(ctx context.Context, entry *entity.TranscriptEntry) {
	c.broadcast(EventNewMessage, entry.VendorID, entry)

	if c.repo == nil {
		return
	}
	if err := c.repo.SaveTranscript(ctx, entry); err != nil {
		c.log.With(
			slog.String("vendor", entry.VendorID),
			slog.String("role", entry.Role),
			sl.Err(err),
		).Error("save transcript")
	}
}

func (c *Core) GetHistory(ctx context.Context, vendorID string, limit, offset int64) ([]entity.TranscriptEntry, error) {
	if _, err := c.GetVendor(vendorID); err != nil {
		return nil, err
	}
	if c.repo == nil {
		return []entity.TranscriptEntry{}, nil
	}
	return c.repo.GetTranscript(ctx, vendorID, limit, offset)
}
