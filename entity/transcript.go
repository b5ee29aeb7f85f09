package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TranscriptEntry is a stored line of a customer conversation with a vendor.
type TranscriptEntry struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VendorID  string             `json:"vendor_id" bson:"vendor_id"`
	Role      string             `json:"role" bson:"role"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

func NewTranscriptEntry(vendorID, role, text string) *TranscriptEntry {
	return &TranscriptEntry{
		VendorID:  vendorID,
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	}
}
