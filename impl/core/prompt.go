package core

import (
	"VendorChat/entity"
	"fmt"
	"strings"
	"time"
)

const dateTimeLayout = "January 2, 2006 at 03:04:05 PM"

// ResolveLocation maps a browser timezone name to a location, an empty name
// means the server's local time.
func ResolveLocation(timezone string) (*time.Location, error) {
	if timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTimezone, timezone)
	}
	return loc, nil
}

// FormatDateTime renders t the way the assistant is told the current time,
// e.g. "October 17, 2026 at 02:03:04 PM".
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateTimeLayout)
}

func ServicesLine(vendor entity.Vendor) string {
	lines := make([]string, 0, len(vendor.Services))
	for _, s := range vendor.Services {
		lines = append(lines, fmt.Sprintf("Service:  %s, Description: %s, Expected Duration in Minutes: %d",
			s.Name, s.Description, s.DurationMinutes))
	}
	return strings.Join(lines, "; ")
}

func RenderSystemPrompt(template string, vendor entity.Vendor, dateNow string) string {
	r := strings.NewReplacer(
		"{ vendor_name }", vendor.Name,
		"{ vendor_services }", ServicesLine(vendor),
		"{ service_fee }", vendor.ServiceFee,
		"{ hourly_charge }", vendor.HourlyCharge,
		"{ date_now }", dateNow,
	)
	return r.Replace(template)
}
