package service

import (
	"context"

	"kivutrips/internal/errors"
	"kivutrips/internal/model"
	"kivutrips/internal/repository"
)

// FeaturedLimit caps how many listings the featured endpoint returns.
// Callers must not assume the featured set is exhaustive.
const FeaturedLimit = 6

// ActivityService exposes catalog operations. Role enforcement for the
// mutating operations lives in the HTTP guard, not here.
type ActivityService interface {
	List(ctx context.Context) ([]model.Activity, error)
	Get(ctx context.Context, id string) (*model.Activity, error)
	ListFeatured(ctx context.Context) ([]model.Activity, error)
	Create(ctx context.Context, activity *model.Activity) (*model.Activity, error)
	Update(ctx context.Context, id string, update repository.ActivityUpdate) (*model.Activity, error)
	Delete(ctx context.Context, id string) error
	ToggleFeatured(ctx context.Context, id string) (*model.Activity, error)
}

type activityService struct {
	activities repository.ActivityRepository
}

// NewActivityService builds an ActivityService on top of a listing store.
func NewActivityService(activities repository.ActivityRepository) ActivityService {
	return &activityService{activities: activities}
}

func (s *activityService) List(ctx context.Context) ([]model.Activity, error) {
	return s.activities.List(ctx)
}

func (s *activityService) Get(ctx context.Context, id string) (*model.Activity, error) {
	return s.activities.FindByID(ctx, id)
}

func (s *activityService) ListFeatured(ctx context.Context) ([]model.Activity, error) {
	return s.activities.ListFeatured(ctx, FeaturedLimit)
}

func (s *activityService) Create(ctx context.Context, activity *model.Activity) (*model.Activity, error) {
	if !model.ValidActivityType(activity.Type) {
		return nil, errors.ErrInvalidActivityType
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *activityService) Update(ctx context.Context, id string, update repository.ActivityUpdate) (*model.Activity, error) {
	if update.Type != nil && !model.ValidActivityType(*update.Type) {
		return nil, errors.ErrInvalidActivityType
	}
	return s.activities.Update(ctx, id, update)
}

func (s *activityService) Delete(ctx context.Context, id string) error {
	return s.activities.Delete(ctx, id)
}

func (s *activityService) ToggleFeatured(ctx context.Context, id string) (*model.Activity, error) {
	return s.activities.ToggleFeatured(ctx, id)
}
