package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"kivutrips/internal/auth"
	"kivutrips/internal/cache"
	"kivutrips/internal/errors"
	"kivutrips/internal/model"
	"kivutrips/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName, phone string) (token string, user *model.PublicUser, err error)
	Login(ctx context.Context, email, password string) (token string, user *model.PublicUser, err error)
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	presence   cache.PresenceTracker
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, presence cache.PresenceTracker) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		presence:   presence,
	}
}

// Register creates a new user with a hashed password and returns a session
// token. New users always get the user role; admins come from seeding.
func (s *authService) Register(ctx context.Context, email, password, firstName, lastName, phone string) (string, *model.PublicUser, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return "", nil, errors.ErrDuplicateUser
	}
	if err != nil && !stderrors.Is(err, errors.ErrUserNotFound) {
		return "", nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		Role:         model.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if stderrors.Is(err, errors.ErrDuplicateUser) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user.Public(), nil
}

// Login authenticates a user and returns a session token. An unknown email
// and a wrong password produce the same error so nothing distinguishes the
// two cases to a caller.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.PublicUser, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	// Best-effort: a presence outage never blocks login.
	_ = s.presence.Touch(ctx, user.ID)

	return token, user.Public(), nil
}
