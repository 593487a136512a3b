package service

import (
	"context"
	"time"

	"kivutrips/internal/cache"
	"kivutrips/internal/model"
	"kivutrips/internal/repository"
)

// Profile is a user's public projection plus their last recorded
// activity time. LastActive is nil when presence has nothing recorded.
type Profile struct {
	model.PublicUser
	LastActive *time.Time `json:"last_active,omitempty"`
}

// UserService exposes profile operations for the authenticated user.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, update repository.ProfileUpdate) (*model.PublicUser, error)
	TouchActivity(ctx context.Context, userID string) error
}

type userService struct {
	users    repository.UserRepository
	presence cache.PresenceTracker
}

// NewUserService builds a UserService with repository and presence tracker.
func NewUserService(users repository.UserRepository, presence cache.PresenceTracker) UserService {
	return &userService{users: users, presence: presence}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := &Profile{PublicUser: *user.Public()}
	if ts, ok := s.presence.LastActive(ctx, userID); ok {
		profile.LastActive = &ts
	}
	return profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, update repository.ProfileUpdate) (*model.PublicUser, error) {
	user, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// TouchActivity bumps the caller's last-active timestamp.
func (s *userService) TouchActivity(ctx context.Context, userID string) error {
	return s.presence.Touch(ctx, userID)
}
