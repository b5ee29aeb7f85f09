package schedule

import (
	"VendorChat/entity"
	"VendorChat/internal/lib/sl"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const dateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// Cache keeps serialized schedules; Get returns nil on a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type Service struct {
	fallback Provider
	calendar *CalendarProvider
	cache    Cache
	ttl      time.Duration
	log      *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	return &Service{
		fallback: StubProvider{},
		log:      logger.With(sl.Module("schedule")),
	}
}

func (s *Service) SetCalendar(calendar *CalendarProvider) {
	s.calendar = calendar
}

func (s *Service) SetCache(cache Cache, ttl time.Duration) {
	s.cache = cache
	s.ttl = ttl
}

// ParseDate accepts a calendar date in YYYY-MM-DD form.
func (s *Service) ParseDate(date string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return day, nil
}

// Lookup returns the vendor's blocks for the date.
func (s *Service) Lookup(ctx context.Context, vendorID, date string) ([]entity.ScheduleBlock, error) {
	day, err := s.ParseDate(date)
	if err != nil {
		return nil, err
	}

	provider := s.providerFor(vendorID)
	key := fmt.Sprintf("schedule:%s:%s:%s", provider.Name(), vendorID, date)

	if blocks, ok := s.fromCache(ctx, key); ok {
		return blocks, nil
	}

	blocks, err := provider.Blocks(ctx, vendorID, day)
	if err != nil {
		return nil, fmt.Errorf("%s lookup: %w", provider.Name(), err)
	}

	s.toCache(ctx, key, blocks)

	s.log.With(
		slog.String("vendor", vendorID),
		slog.String("date", date),
		slog.String("provider", provider.Name()),
		slog.Int("blocks", len(blocks)),
	).Debug("schedule lookup")

	return blocks, nil
}

// Describe looks up the schedule and renders the available blocks.
func (s *Service) Describe(ctx context.Context, vendorID, date string) (string, error) {
	blocks, err := s.Lookup(ctx, vendorID, date)
	if err != nil {
		return "", err
	}
	return Describe(date, blocks), nil
}

// IsAvailable reports whether start..end lies inside one available block.
func (s *Service) IsAvailable(ctx context.Context, vendorID, date, start, end string) (bool, error) {
	blocks, err := s.Lookup(ctx, vendorID, date)
	if err != nil {
		return false, err
	}
	return fits(blocks, start, end), nil
}

func fits(blocks []entity.ScheduleBlock, start, end string) bool {
	// HH:MM strings compare in clock order
	if len(start) != len(clockLayout) || len(end) != len(clockLayout) || start >= end {
		return false
	}
	for _, b := range blocks {
		if b.Type == entity.Available && b.Start <= start && end <= b.End {
			return true
		}
	}
	return false
}

func (s *Service) providerFor(vendorID string) Provider {
	if s.calendar != nil && s.calendar.Covers(vendorID) {
		return s.calendar
	}
	return s.fallback
}

func (s *Service) fromCache(ctx context.Context, key string) ([]entity.ScheduleBlock, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.With(slog.String("key", key), sl.Err(err)).Warn("cache get")
		return nil, false
	}
	if data == nil {
		return nil, false
	}
	var blocks []entity.ScheduleBlock
	if err = json.Unmarshal(data, &blocks); err != nil {
		s.log.With(slog.String("key", key), sl.Err(err)).Warn("cache decode")
		return nil, false
	}
	return blocks, true
}

func (s *Service) toCache(ctx context.Context, key string, blocks []entity.ScheduleBlock) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(blocks)
	if err != nil {
		return
	}
	if err = s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.log.With(slog.String("key", key), sl.Err(err)).Warn("cache set")
	}
}
