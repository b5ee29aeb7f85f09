package schedule

import (
	"VendorChat/entity"
	"context"
	"time"
)

// Provider returns the schedule of a vendor for one day.
type Provider interface {
	Blocks(ctx context.Context, vendorID string, day time.Time) ([]entity.ScheduleBlock, error)
	Name() string
}

// StubProvider serves the same fixed day for every vendor and date.
type StubProvider struct{}

func (StubProvider) Name() string {
	return "stub"
}

func (StubProvider) Blocks(_ context.Context, _ string, _ time.Time) ([]entity.ScheduleBlock, error) {
	return []entity.ScheduleBlock{
		{Start: "14:00", End: "16:00", Type: entity.Available},
		{Start: "16:30", End: "18:00", Type: entity.Busy},
	}, nil
}
