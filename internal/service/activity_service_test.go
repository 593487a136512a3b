package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"kivutrips/internal/errors"
	"kivutrips/internal/model"
	"kivutrips/internal/repository"
)

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *model.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) FindByID(ctx context.Context, id string) (*model.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Activity), args.Error(1)
}

func (m *MockActivityRepository) List(ctx context.Context) ([]model.Activity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Activity), args.Error(1)
}

func (m *MockActivityRepository) ListFeatured(ctx context.Context, limit int) ([]model.Activity, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Activity), args.Error(1)
}

func (m *MockActivityRepository) Update(ctx context.Context, id string, update repository.ActivityUpdate) (*model.Activity, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Activity), args.Error(1)
}

func (m *MockActivityRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockActivityRepository) ToggleFeatured(ctx context.Context, id string) (*model.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Activity), args.Error(1)
}

func TestActivityService_CreateValidatesType(t *testing.T) {
	tests := []struct {
		name         string
		activityType string
		wantErr      error
	}{
		{"adventure ok", model.TypeAdventure, nil},
		{"hotel ok", model.TypeHotel, nil},
		{"restaurant ok", model.TypeRestaurant, nil},
		{"lodge ok", model.TypeLodge, nil},
		{"unknown rejected", "museum", errors.ErrInvalidActivityType},
		{"empty rejected", "", errors.ErrInvalidActivityType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockActivityRepository)
			if tt.wantErr == nil {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Activity")).Return(nil)
			}
			svc := NewActivityService(repo)

			_, err := svc.Create(context.Background(), &model.Activity{
				Name:        "Listing",
				Type:        tt.activityType,
				Image:       "https://example.com/x.jpg",
				Description: "Desc",
				Location:    "Kigali",
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestActivityService_UpdateValidatesType(t *testing.T) {
	repo := new(MockActivityRepository)
	svc := NewActivityService(repo)

	bad := "spaceship"
	_, err := svc.Update(context.Background(), "some-id", repository.ActivityUpdate{Type: &bad})
	assert.ErrorIs(t, err, errors.ErrInvalidActivityType)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)

	good := model.TypeLodge
	repo.On("Update", mock.Anything, "some-id", mock.Anything).Return(&model.Activity{ID: "some-id", Type: good}, nil)
	updated, err := svc.Update(context.Background(), "some-id", repository.ActivityUpdate{Type: &good})
	assert.NoError(t, err)
	assert.Equal(t, model.TypeLodge, updated.Type)
	repo.AssertExpectations(t)
}

func TestActivityService_ListFeaturedUsesCap(t *testing.T) {
	repo := new(MockActivityRepository)
	repo.On("ListFeatured", mock.Anything, FeaturedLimit).Return([]model.Activity{}, nil)
	svc := NewActivityService(repo)

	_, err := svc.ListFeatured(context.Background())
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
