package profile

import (
	"VendorChat/entity"
	"VendorChat/internal/lib/sl"
	"VendorChat/internal/lib/validate"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var ErrInvalidUser = errors.New("invalid user")

type Repository interface {
	UpsertProfile(ctx context.Context, user entity.User) error
	GetProfile(ctx context.Context) (*entity.User, error)
}

// Service holds the single customer profile of this deployment.
type Service struct {
	repository Repository
	mu         sync.RWMutex
	user       entity.User
	log        *slog.Logger
}

func NewProfileService(logger *slog.Logger, defaultUser entity.User) *Service {
	return &Service{
		user: defaultUser,
		log:  logger.With(sl.Module("profile-service")),
	}
}

// SetRepository attaches persistence and replaces the default profile with
// the stored one when there is one.
func (s *Service) SetRepository(ctx context.Context, repository Repository) {
	s.repository = repository

	stored, err := repository.GetProfile(ctx)
	if err != nil {
		s.log.Error("load stored profile", sl.Err(err))
		return
	}
	if stored == nil {
		return
	}

	s.mu.Lock()
	s.user = *stored
	s.mu.Unlock()
	s.log.With(slog.String("name", stored.Name)).Debug("stored profile loaded")
}

func (s *Service) Get() entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Update validates and replaces the whole profile.
func (s *Service) Update(ctx context.Context, user entity.User) (entity.User, error) {
	updated := entity.NewUser(user.Name, user.Phone)
	if err := validate.Struct(updated); err != nil {
		return entity.User{}, fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}

	if s.repository != nil {
		if err := s.repository.UpsertProfile(ctx, *updated); err != nil {
			return entity.User{}, fmt.Errorf("store profile: %w", err)
		}
	}

	s.mu.Lock()
	s.user = *updated
	s.mu.Unlock()

	s.log.With(
		slog.String("name", updated.Name),
		sl.Secret("phone", updated.Phone),
		slog.Time("updated_at", updated.UpdatedAt.Truncate(time.Second)),
	).Info("profile updated")

	return *updated, nil
}
