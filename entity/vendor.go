package entity

type Service struct {
	Name            string `json:"name" bson:"name" validate:"required"`
	Description     string `json:"description" bson:"description"`
	DurationMinutes int    `json:"durationMinutes" bson:"duration_minutes" validate:"gt=0"`
}

type Vendor struct {
	Name         string    `json:"name" bson:"name" validate:"required"`
	ServiceFee   string    `json:"serviceFee" bson:"service_fee" validate:"required,currency"`
	HourlyCharge string    `json:"hourlyCharge" bson:"hourly_charge" validate:"required,currency"`
	Services     []Service `json:"services" bson:"services" validate:"required,dive"`
}

// VendorDirectory maps a vendor id to its profile.
type VendorDirectory map[string]Vendor

// FindService matches a service by name, ignoring case.
func (v *Vendor) FindService(name string) (*Service, bool) {
	for i := range v.Services {
		if equalFold(v.Services[i].Name, name) {
			return &v.Services[i], true
		}
	}
	return nil, false
}
