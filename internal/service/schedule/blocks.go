package schedule

import (
	"VendorChat/entity"
	"fmt"
	"sort"
	"strings"
	"time"
)

const clockLayout = "15:04"

// Period is a busy interval reported by a calendar.
type Period struct {
	Start time.Time
	End   time.Time
}

// BuildBlocks splits the working window into available and busy blocks.
// Busy periods are clipped to the window, overlapping ones are merged.
func BuildBlocks(dayStart, dayEnd time.Time, busy []Period) []entity.ScheduleBlock {
	if !dayEnd.After(dayStart) {
		return nil
	}

	clipped := make([]Period, 0, len(busy))
	for _, p := range busy {
		if !p.End.After(dayStart) || !p.Start.Before(dayEnd) {
			continue
		}
		if p.Start.Before(dayStart) {
			p.Start = dayStart
		}
		if p.End.After(dayEnd) {
			p.End = dayEnd
		}
		clipped = append(clipped, p)
	}
	sort.Slice(clipped, func(i, j int) bool {
		return clipped[i].Start.Before(clipped[j].Start)
	})

	var merged []Period
	for _, p := range clipped {
		if n := len(merged); n > 0 && !p.Start.After(merged[n-1].End) {
			if p.End.After(merged[n-1].End) {
				merged[n-1].End = p.End
			}
			continue
		}
		merged = append(merged, p)
	}

	var blocks []entity.ScheduleBlock
	cursor := dayStart
	for _, p := range merged {
		if p.Start.After(cursor) {
			blocks = append(blocks, block(cursor, p.Start, entity.Available))
		}
		blocks = append(blocks, block(p.Start, p.End, entity.Busy))
		cursor = p.End
	}
	if dayEnd.After(cursor) {
		blocks = append(blocks, block(cursor, dayEnd, entity.Available))
	}
	return blocks
}

func block(start, end time.Time, t entity.Availability) entity.ScheduleBlock {
	return entity.ScheduleBlock{
		Start: start.Format(clockLayout),
		End:   end.Format(clockLayout),
		Type:  t,
	}
}

// Describe renders the available blocks in a form the assistant can quote.
func Describe(date string, blocks []entity.ScheduleBlock) string {
	var free []string
	for _, b := range blocks {
		if b.Type == entity.Available {
			free = append(free, fmt.Sprintf("%s to %s", b.Start, b.End))
		}
	}
	if len(free) == 0 {
		return fmt.Sprintf("No available time blocks on %s", date)
	}
	return fmt.Sprintf("Available time blocks on %s: %s", date, strings.Join(free, ", "))
}

// atClock places an HH:MM clock time on the given day.
func atClock(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
