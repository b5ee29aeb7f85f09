package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingRequest struct {
	Service string `json:"service" validate:"required"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Start   string `json:"start" validate:"required,datetime=15:04"`
	End     string `json:"end" validate:"required,datetime=15:04"`
}

type Booking struct {
	ID         string    `json:"id" bson:"booking_id"`
	VendorID   string    `json:"vendor_id" bson:"vendor_id"`
	VendorName string    `json:"vendor_name" bson:"vendor_name"`
	Service    string    `json:"service" bson:"service"`
	Date       string    `json:"date" bson:"date"`
	Start      string    `json:"start" bson:"start"`
	End        string    `json:"end" bson:"end"`
	Name       string    `json:"name" bson:"name"`
	Phone      string    `json:"phone" bson:"phone"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

func NewBooking(vendorID string, vendor Vendor, req BookingRequest, user User) *Booking {
	return &Booking{
		ID:         uuid.NewString(),
		VendorID:   vendorID,
		VendorName: vendor.Name,
		Service:    req.Service,
		Date:       req.Date,
		Start:      req.Start,
		End:        req.End,
		Name:       user.Name,
		Phone:      user.Phone,
		CreatedAt:  time.Now(),
	}
}

// SmsText is the confirmation texted to the customer.
func (b *Booking) SmsText() string {
	return fmt.Sprintf("Hi %s, your %s appointment with %s is confirmed for %s from %s to %s.",
		b.Name, b.Service, b.VendorName, b.Date, b.Start, b.End)
}
