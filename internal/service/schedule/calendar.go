package schedule

import (
	"VendorChat/entity"
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// CalendarProvider derives blocks from the Google Calendar free/busy API.
type CalendarProvider struct {
	svc          *calendar.Service
	calendars    map[string]string
	workdayStart string
	workdayEnd   string
}

func NewCalendarProvider(ctx context.Context, credentialsFile string, calendars map[string]string, workdayStart, workdayEnd string) (*CalendarProvider, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	svc, err := calendar.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, fmt.Errorf("calendar service: %w", err)
	}
	return &CalendarProvider{
		svc:          svc,
		calendars:    calendars,
		workdayStart: workdayStart,
		workdayEnd:   workdayEnd,
	}, nil
}

func (c *CalendarProvider) Name() string {
	return "google-calendar"
}

// Covers reports whether a calendar is configured for the vendor.
func (c *CalendarProvider) Covers(vendorID string) bool {
	_, ok := c.calendars[vendorID]
	return ok
}

func (c *CalendarProvider) Blocks(ctx context.Context, vendorID string, day time.Time) ([]entity.ScheduleBlock, error) {
	calendarID, ok := c.calendars[vendorID]
	if !ok {
		return nil, fmt.Errorf("no calendar for vendor %s", vendorID)
	}

	dayStart, err := atClock(day, c.workdayStart)
	if err != nil {
		return nil, err
	}
	dayEnd, err := atClock(day, c.workdayEnd)
	if err != nil {
		return nil, err
	}

	resp, err := c.svc.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin:  dayStart.Format(time.RFC3339),
		TimeMax:  dayEnd.Format(time.RFC3339),
		TimeZone: day.Location().String(),
		Items:    []*calendar.FreeBusyRequestItem{{Id: calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query: %w", err)
	}

	cal, ok := resp.Calendars[calendarID]
	if !ok {
		return nil, fmt.Errorf("calendar %s missing in response", calendarID)
	}
	if len(cal.Errors) > 0 {
		return nil, fmt.Errorf("calendar %s: %s", calendarID, cal.Errors[0].Reason)
	}

	busy, err := periods(cal.Busy, day.Location())
	if err != nil {
		return nil, err
	}
	return BuildBlocks(dayStart, dayEnd, busy), nil
}

func periods(busy []*calendar.TimePeriod, loc *time.Location) ([]Period, error) {
	out := make([]Period, 0, len(busy))
	for _, b := range busy {
		start, err := time.Parse(time.RFC3339, b.Start)
		if err != nil {
			return nil, fmt.Errorf("busy start %q: %w", b.Start, err)
		}
		end, err := time.Parse(time.RFC3339, b.End)
		if err != nil {
			return nil, fmt.Errorf("busy end %q: %w", b.End, err)
		}
		out = append(out, Period{Start: start.In(loc), End: end.In(loc)})
	}
	return out, nil
}
