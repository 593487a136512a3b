package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"kivutrips/internal/errors"
	"kivutrips/internal/model"
)

// memoryUserRepository is a development credential store. Unlike the ad hoc
// global-slice fixtures it replaces, access is mutex-guarded so concurrent
// requests are safe.
type memoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]model.User
	byEmail map[string]string
}

// NewMemoryUserRepository builds an in-memory credential store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:    make(map[string]model.User),
		byEmail: make(map[string]string),
	}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return errors.ErrDuplicateUser
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.ErrInvalidID
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	user := r.byID[id]
	return &user, nil
}

func (r *memoryUserRepository) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*model.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}
	user.UpdatedAt = time.Now()

	r.byID[id] = user
	return &user, nil
}

// memoryActivityRepository is a development listing store.
type memoryActivityRepository struct {
	mu   sync.RWMutex
	byID map[string]model.Activity
}

// NewMemoryActivityRepository builds an in-memory listing store.
func NewMemoryActivityRepository() ActivityRepository {
	return &memoryActivityRepository{
		byID: make(map[string]model.Activity),
	}
}

func (r *memoryActivityRepository) Create(ctx context.Context, activity *model.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	now := time.Now()
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = now
	}
	activity.UpdatedAt = now

	r.byID[activity.ID] = *activity
	return nil
}

func (r *memoryActivityRepository) FindByID(ctx context.Context, id string) (*model.Activity, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.ErrInvalidID
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	activity, ok := r.byID[id]
	if !ok {
		return nil, errors.ErrActivityNotFound
	}
	return &activity, nil
}

func (r *memoryActivityRepository) List(ctx context.Context) ([]model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activities := make([]model.Activity, 0, len(r.byID))
	for _, activity := range r.byID {
		activities = append(activities, activity)
	}
	sort.Slice(activities, func(i, j int) bool {
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})
	return activities, nil
}

func (r *memoryActivityRepository) ListFeatured(ctx context.Context, limit int) ([]model.Activity, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	featured := make([]model.Activity, 0, limit)
	for _, activity := range all {
		if !activity.Featured {
			continue
		}
		featured = append(featured, activity)
		if len(featured) == limit {
			break
		}
	}
	return featured, nil
}

func (r *memoryActivityRepository) Update(ctx context.Context, id string, update ActivityUpdate) (*model.Activity, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.byID[id]
	if !ok {
		return nil, errors.ErrActivityNotFound
	}

	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setString(&activity.Name, update.Name)
	setString(&activity.Type, update.Type)
	setString(&activity.Image, update.Image)
	setString(&activity.Description, update.Description)
	setString(&activity.Location, update.Location)
	setString(&activity.FullAddress, update.FullAddress)
	setString(&activity.Latitude, update.Latitude)
	setString(&activity.Longitude, update.Longitude)
	setString(&activity.Contact, update.Contact)
	setString(&activity.Phone, update.Phone)
	if update.Featured != nil {
		activity.Featured = *update.Featured
	}
	activity.UpdatedAt = time.Now()

	r.byID[id] = activity
	return &activity, nil
}

func (r *memoryActivityRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return errors.ErrActivityNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memoryActivityRepository) ToggleFeatured(ctx context.Context, id string) (*model.Activity, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.byID[id]
	if !ok {
		return nil, errors.ErrActivityNotFound
	}
	activity.Featured = !activity.Featured
	activity.UpdatedAt = time.Now()

	r.byID[id] = activity
	return &activity, nil
}
