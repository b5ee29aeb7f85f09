package vendors

import (
	"VendorChat/entity"
	"VendorChat/internal/service/directory"
	"context"
)

type Core interface {
	GetVendors() (entity.VendorDirectory, error)
	ListVendors() ([]directory.Entry, error)
	GetSchedule(ctx context.Context, vendorID, date string) ([]entity.ScheduleBlock, error)
	GetBookings(ctx context.Context, vendorID string) ([]entity.Booking, error)
}
