package entity

import (
	"strings"
	"time"
)

type User struct {
	Name      string    `json:"name" bson:"name" validate:"required"`
	Phone     string    `json:"phone" bson:"phone" validate:"required,e164"`
	UpdatedAt time.Time `json:"-" bson:"updated_at"`
}

func NewUser(name, phone string) *User {
	return &User{
		Name:      strings.TrimSpace(name),
		Phone:     strings.TrimSpace(phone),
		UpdatedAt: time.Now(),
	}
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
