package entity

type Availability string

const (
	Available Availability = "available"
	Busy      Availability = "busy"
)

type ScheduleBlock struct {
	Start string       `json:"start" bson:"start" validate:"required,datetime=15:04"`
	End   string       `json:"end" bson:"end" validate:"required,datetime=15:04"`
	Type  Availability `json:"type" bson:"type" validate:"oneof=available busy"`
}
