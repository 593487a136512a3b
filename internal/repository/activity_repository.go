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

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository builds a GORM-backed listing store.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *model.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) FindByID(ctx context.Context, id string) (*model.Activity, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.ErrInvalidID
	}
	var activity model.Activity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&activity).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrActivityNotFound
		}
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepository) List(ctx context.Context) ([]model.Activity, error) {
	var activities []model.Activity
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) ListFeatured(ctx context.Context, limit int) ([]model.Activity, error) {
	var activities []model.Activity
	if err := r.db.WithContext(ctx).Where("featured = ?", true).Order("created_at DESC").Limit(limit).Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) Update(ctx context.Context, id string, update ActivityUpdate) (*model.Activity, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	values := map[string]interface{}{}
	setString := func(column string, v *string) {
		if v != nil {
			values[column] = *v
		}
	}
	setString("name", update.Name)
	setString("type", update.Type)
	setString("image", update.Image)
	setString("description", update.Description)
	setString("location", update.Location)
	setString("full_address", update.FullAddress)
	setString("latitude", update.Latitude)
	setString("longitude", update.Longitude)
	setString("contact", update.Contact)
	setString("phone", update.Phone)
	if update.Featured != nil {
		values["featured"] = *update.Featured
	}

	values["updated_at"] = time.Now()
	if err := r.db.WithContext(ctx).Model(&model.Activity{}).Where("id = ?", id).Updates(values).Error; err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

func (r *activityRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.ErrInvalidID
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Activity{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.ErrActivityNotFound
	}
	return nil
}

// ToggleFeatured flips the featured flag in a single UPDATE so concurrent
// toggles of the same record cannot lose each other's writes.
func (r *activityRepository) ToggleFeatured(ctx context.Context, id string) (*model.Activity, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.ErrInvalidID
	}
	res := r.db.WithContext(ctx).Model(&model.Activity{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"featured":   gorm.Expr("NOT featured"),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errors.ErrActivityNotFound
	}
	return r.FindByID(ctx, id)
}
