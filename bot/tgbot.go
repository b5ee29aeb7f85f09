package bot

import (
	"VendorChat/entity"
	"VendorChat/internal/lib/sl"
	"VendorChat/internal/service/directory"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
)

// AdminService answers the admin commands.
type AdminService interface {
	ListVendors() ([]directory.Entry, error)
	GetBookings(ctx context.Context, vendorID string) ([]entity.Booking, error)
}

type TgBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	botUsername string
	adminId     int64
	admin       AdminService
	updater     *ext.Updater
}

func NewTgBot(botName, apiKey string, adminId int64, log *slog.Logger) (*TgBot, error) {
	tgBot := &TgBot{
		log:         log.With(sl.Module("tgbot")),
		adminId:     adminId,
		botUsername: botName,
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	tgBot.api = api

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			tgBot.log.Error("handling update", sl.Err(err))
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	dispatcher.AddHandler(handlers.NewCommand("vendors", tgBot.adminOnly(tgBot.handleVendors)))
	dispatcher.AddHandler(handlers.NewCommand("bookings", tgBot.adminOnly(tgBot.handleBookings)))
	tgBot.updater = ext.NewUpdater(dispatcher, nil)

	return tgBot, nil
}

func (t *TgBot) SetAdminService(admin AdminService) {
	t.admin = admin
}

// Start polls for admin commands until Stop is called.
func (t *TgBot) Start() error {
	err := t.updater.StartPolling(t.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("start polling: %w", err)
	}
	t.log.With(slog.String("bot", t.botUsername)).Info("polling started")

	t.updater.Idle()
	return nil
}

func (t *TgBot) Stop() {
	_ = t.updater.Stop()
}

func (t *TgBot) adminOnly(next handlers.Response) handlers.Response {
	return func(b *tgbotapi.Bot, ctx *ext.Context) error {
		if ctx.EffectiveUser == nil || ctx.EffectiveUser.Id != t.adminId {
			t.log.Warn("command from non admin")
			return nil
		}
		if t.admin == nil {
			t.plainResponse(ctx.EffectiveChat.Id, "Service is not ready")
			return nil
		}
		return next(b, ctx)
	}
}

func (t *TgBot) handleVendors(_ *tgbotapi.Bot, ctx *ext.Context) error {
	vendors, err := t.admin.ListVendors()
	if err != nil {
		t.plainResponse(ctx.EffectiveChat.Id, err.Error())
		return nil
	}
	t.plainResponse(ctx.EffectiveChat.Id, formatVendors(vendors))
	return nil
}

func (t *TgBot) handleBookings(_ *tgbotapi.Bot, ctx *ext.Context) error {
	args := ctx.Args()
	if len(args) < 2 {
		t.plainResponse(ctx.EffectiveChat.Id, "Usage: /bookings vendor_id")
		return nil
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bookings, err := t.admin.GetBookings(reqCtx, args[1])
	if err != nil {
		t.plainResponse(ctx.EffectiveChat.Id, err.Error())
		return nil
	}
	t.plainResponse(ctx.EffectiveChat.Id, formatBookings(args[1], bookings))
	return nil
}

// SendMessage delivers a text to the admin chat.
func (t *TgBot) SendMessage(msg string) {
	t.plainResponse(t.adminId, msg)
}

func (t *TgBot) NotifyBooking(booking *entity.Booking) {
	t.SendMessage(fmt.Sprintf("**New booking** %s\n%s, %s %s-%s\n%s %s",
		booking.VendorName, booking.Service, booking.Date, booking.Start, booking.End, booking.Name, booking.Phone))
}

func formatVendors(vendors []directory.Entry) string {
	if len(vendors) == 0 {
		return "No vendors"
	}
	var b strings.Builder
	for _, v := range vendors {
		fmt.Fprintf(&b, "%s: %s\n", v[0], v[1])
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func formatBookings(vendorID string, bookings []entity.Booking) string {
	if len(bookings) == 0 {
		return fmt.Sprintf("No bookings for %s", vendorID)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Bookings for %s:\n", vendorID)
	for _, booking := range bookings {
		fmt.Fprintf(&b, "%s %s-%s %s, %s\n", booking.Date, booking.Start, booking.End, booking.Service, booking.Name)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (t *TgBot) plainResponse(chatId int64, text string) {
	// the model and our notices use ** for bold
	text = strings.ReplaceAll(text, "**", "*")

	sanitized := sanitize(text)
	if sanitized == "" {
		t.log.With(slog.Int64("id", chatId)).Debug("empty message")
		return
	}

	_, err := t.api.SendMessage(chatId, sanitized, &tgbotapi.SendMessageOpts{
		ParseMode: "MarkdownV2",
	})
	if err != nil {
		t.log.With(
			slog.Int64("id", chatId),
		).Warn("sending message", sl.Err(err))
		_, err = t.api.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{})
		if err != nil {
			t.log.With(
				slog.Int64("id", chatId),
			).Error("sending plain message", sl.Err(err))
		}
	}
}

// sanitize escapes MarkdownV2 reserved characters, leaving * for bold.
func sanitize(input string) string {
	const reserved = "\\`_{}#+-.!|()[]>=~"

	var b strings.Builder
	for _, char := range input {
		if strings.ContainsRune(reserved, char) {
			b.WriteRune('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
