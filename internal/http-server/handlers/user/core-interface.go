package user

import (
	"VendorChat/entity"
	"context"
)

type Core interface {
	GetUser() (entity.User, error)
	UpdateUser(ctx context.Context, user entity.User) (entity.User, error)
}
