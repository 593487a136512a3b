package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"kivutrips/internal/auth"
	"kivutrips/internal/errors"
	"kivutrips/internal/model"
	"kivutrips/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id string, update repository.ProfileUpdate) (*model.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockPresenceTracker is a mock implementation of cache.PresenceTracker.
type MockPresenceTracker struct {
	mock.Mock
}

func (m *MockPresenceTracker) Touch(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockPresenceTracker) LastActive(ctx context.Context, userID string) (lastActive time.Time, ok bool) {
	args := m.Called(ctx, userID)
	return args.Get(0).(time.Time), args.Bool(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, errors.ErrUserNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
					args.Get(1).(*model.User).ID = "11111111-1111-1111-1111-111111111111"
				}).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "user already exists",
			email:    "existing@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: errors.ErrDuplicateUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, new(MockPresenceTracker))

			token, user, err := service.Register(context.Background(), tt.email, tt.password, "Test", "User", "")

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, model.RoleUser, user.Role)

				// The token must round-trip to the same identity.
				claims, err := jwtService.ValidateToken(token)
				assert.NoError(t, err)
				assert.Equal(t, user.ID, claims.UserID)
				assert.Equal(t, tt.email, claims.Email)
				assert.Equal(t, model.RoleUser, claims.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockPresenceTracker)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mPresence *MockPresenceTracker) {
				mRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           "22222222-2222-2222-2222-222222222222",
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleAdmin,
				}, nil)
				mPresence.On("Touch", mock.Anything, "22222222-2222-2222-2222-222222222222").Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mPresence *MockPresenceTracker) {
				mRepo.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, errors.ErrUserNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "not-the-password",
			setupMock: func(mRepo *MockUserRepository, mPresence *MockPresenceTracker) {
				mRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           "22222222-2222-2222-2222-222222222222",
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleUser,
				}, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockPresence := new(MockPresenceTracker)
			tt.setupMock(mockRepo, mockPresence)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockPresence)

			token, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.email, user.Email)

				claims, err := jwtService.ValidateToken(token)
				assert.NoError(t, err)
				assert.Equal(t, user.ID, claims.UserID)
				assert.Equal(t, model.RoleAdmin, claims.Role)
			}

			mockRepo.AssertExpectations(t)
			mockPresence.AssertExpectations(t)
		})
	}
}

// Unknown email and wrong password must be indistinguishable to a caller.
func TestAuthService_LoginErrorsDoNotLeak(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("right-password"), 10)

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "missing@example.com").Return(nil, errors.ErrUserNotFound)
	mockRepo.On("FindByEmail", mock.Anything, "present@example.com").Return(&model.User{
		ID:           "33333333-3333-3333-3333-333333333333",
		Email:        "present@example.com",
		PasswordHash: string(hashedPassword),
		Role:         model.RoleUser,
	}, nil)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockPresenceTracker))

	_, _, errMissing := service.Login(context.Background(), "missing@example.com", "whatever")
	_, _, errWrongPass := service.Login(context.Background(), "present@example.com", "wrong-password")

	assert.Equal(t, errMissing, errWrongPass)
}
