package core

import (
	"VendorChat/ai/gpt"
	"VendorChat/entity"
	"VendorChat/internal/lib/sl"
	"context"
	"errors"
	"log/slog"
	"sync"
)

var (
	ErrNotReady        = errors.New("system is not ready")
	ErrVendorNotFound  = errors.New("vendor not found")
	ErrUnknownTimezone = errors.New("unknown timezone")
	ErrNotConfirmed    = errors.New("the user has not confirmed the booking")
	ErrUnknownService  = errors.New("the vendor does not offer this service")
	ErrNotAvailable    = errors.New("the requested time is not available")
)

type Repository interface {
	SaveTranscript(ctx context.Context, entry *entity.TranscriptEntry) error
	GetTranscript(ctx context.Context, vendorID string, limit, offset int64) ([]entity.TranscriptEntry, error)
	SaveBooking(ctx context.Context, booking *entity.Booking) error
	GetBookings(ctx context.Context, vendorID string) ([]entity.Booking, error)
}

type ScheduleService interface {
	Lookup(ctx context.Context, vendorID, date string) ([]entity.ScheduleBlock, error)
	Describe(ctx context.Context, vendorID, date string) (string, error)
	IsAvailable(ctx context.Context, vendorID, date, start, end string) (bool, error)
}

type ProfileService interface {
	Get() entity.User
	Update(ctx context.Context, user entity.User) (entity.User, error)
}

type Assistant interface {
	Converse(ctx context.Context, turn *entity.ChatTurn, w gpt.StreamWriter) (string, error)
}

type SmsSender interface {
	Send(ctx context.Context, to, body string) error
	ProviderID() string
}

// MessageService pushes live events to the connected vendor dashboards.
type MessageService interface {
	Broadcast(event, vendorID string, payload interface{})
}

type Notifier interface {
	NotifyBooking(booking *entity.Booking)
}

type Core struct {
	repo       Repository
	schedule   ScheduleService
	profile    ProfileService
	ass        Assistant
	sms        SmsSender
	ms         MessageService
	notifier   Notifier
	promptPath string
	authKey    string

	mu      sync.RWMutex
	vendors entity.VendorDirectory

	log *slog.Logger
}

func New(log *slog.Logger) *Core {
	return &Core{
		log: log.With(sl.Module("core")),
	}
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetScheduleService(schedule ScheduleService) {
	c.schedule = schedule
}

func (c *Core) SetProfileService(profile ProfileService) {
	c.profile = profile
}

func (c *Core) SetAssistant(ass Assistant) {
	c.ass = ass
}

func (c *Core) SetSmsSender(sms SmsSender) {
	c.sms = sms
}

func (c *Core) SetMessageService(ms MessageService) {
	c.ms = ms
}

func (c *Core) SetNotifier(notifier Notifier) {
	c.notifier = notifier
}

func (c *Core) SetPromptPath(path string) {
	c.promptPath = path
}

func (c *Core) SetAuthKey(key string) {
	c.authKey = key
}

func (c *Core) SetVendors(vendors entity.VendorDirectory) {
	c.mu.Lock()
	c.vendors = vendors
	c.mu.Unlock()
}

func (c *Core) broadcast(event, vendorID string, payload interface{}) {
	if c.ms != nil {
		c.ms.Broadcast(event, vendorID, payload)
	}
}
