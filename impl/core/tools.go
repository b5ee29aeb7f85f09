package core

import (
	"VendorChat/entity"
	"VendorChat/internal/lib/sl"
	"VendorChat/internal/lib/validate"
	"context"
	"fmt"
	"log/slog"
)

func (c *Core) CheckSchedule(ctx context.Context, vendorID, date string) (string, error) {
	if c.schedule == nil {
		return "", ErrNotReady
	}
	return c.schedule.Describe(ctx, vendorID, date)
}

// ConfirmBooking books the slot once the customer accepted the confirmation
// prompt, then texts the customer and notifies the vendor side.
func (c *Core) ConfirmBooking(ctx context.Context, turn *entity.ChatTurn, req entity.BookingRequest) (string, error) {
	if !turn.Confirmed() {
		return "", ErrNotConfirmed
	}
	if err := validate.Struct(req); err != nil {
		return "", err
	}
	if c.schedule == nil || c.profile == nil || c.sms == nil {
		return "", ErrNotReady
	}

	service, ok := turn.Vendor.FindService(req.Service)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownService, req.Service)
	}
	req.Service = service.Name

	free, err := c.schedule.IsAvailable(ctx, turn.VendorID, req.Date, req.Start, req.End)
	if err != nil {
		return "", err
	}
	if !free {
		return "", fmt.Errorf("%w: %s %s-%s", ErrNotAvailable, req.Date, req.Start, req.End)
	}

	booking := entity.NewBooking(turn.VendorID, turn.Vendor, req, c.profile.Get())
	log := c.log.With(
		slog.String("vendor", booking.VendorID),
		slog.String("booking", booking.ID),
		slog.String("sms", c.sms.ProviderID()),
	)

	if err = c.sms.Send(ctx, booking.Phone, booking.SmsText()); err != nil {
		log.Error("send confirmation sms", sl.Err(err))
		return "", fmt.Errorf("send sms: %w", err)
	}
	turn.MarkBooked()

	if c.repo != nil {
		if err = c.repo.SaveBooking(ctx, booking); err != nil {
			log.Error("save booking", sl.Err(err))
		}
	}
	c.broadcast(EventBookingConfirmed, booking.VendorID, booking)
	if c.notifier != nil {
		c.notifier.NotifyBooking(booking)
	}

	log.Info("booking confirmed")

	return fmt.Sprintf("Booked %s with %s on %s from %s to %s. A confirmation text was sent to %s.",
		booking.Service, booking.VendorName, booking.Date, booking.Start, booking.End, booking.Phone), nil
}
