package repository

import (
	"context"

	"kivutrips/internal/model"
)

// ProfileUpdate carries the profile fields a user may change. Nil fields
// are left untouched; set fields overwrite.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
	AvatarURL *string
}

// ActivityUpdate carries a partial listing update. Nil fields are left
// untouched; set fields overwrite.
type ActivityUpdate struct {
	Name        *string
	Type        *string
	Image       *string
	Description *string
	Location    *string
	FullAddress *string
	Latitude    *string
	Longitude   *string
	Contact     *string
	Phone       *string
	Featured    *bool
}

// UserRepository defines credential-store persistence operations.
// Implementations surface errors.ErrUserNotFound, errors.ErrDuplicateUser
// and errors.ErrInvalidID so callers stay driver-agnostic.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*model.User, error)
}

// ActivityRepository defines listing-store persistence operations.
// Implementations surface errors.ErrActivityNotFound and
// errors.ErrInvalidID so callers stay driver-agnostic.
type ActivityRepository interface {
	Create(ctx context.Context, activity *model.Activity) error
	FindByID(ctx context.Context, id string) (*model.Activity, error)
	List(ctx context.Context) ([]model.Activity, error)
	ListFeatured(ctx context.Context, limit int) ([]model.Activity, error)
	Update(ctx context.Context, id string, update ActivityUpdate) (*model.Activity, error)
	Delete(ctx context.Context, id string) error
	ToggleFeatured(ctx context.Context, id string) (*model.Activity, error)
}
