package repository

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kivutrips/internal/errors"
	"kivutrips/internal/model"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed credential store.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil && stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.ErrDuplicateUser
	}
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.ErrInvalidID
	}
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*model.User, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	values := map[string]interface{}{}
	if update.FirstName != nil {
		values["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		values["last_name"] = *update.LastName
	}
	if update.Phone != nil {
		values["phone"] = *update.Phone
	}
	if update.AvatarURL != nil {
		values["avatar_url"] = *update.AvatarURL
	}

	if len(values) > 0 {
		values["updated_at"] = time.Now()
		if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(values).Error; err != nil {
			return nil, err
		}
	}

	return r.FindByID(ctx, id)
}
