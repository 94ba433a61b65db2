package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/velodz/backoffice/internal/domain"
	"github.com/velodz/backoffice/internal/repository/postgres"
	"github.com/velodz/backoffice/internal/utils/jwt"
	"github.com/velodz/backoffice/internal/utils/password"
)

// AuthServiceConfig holds validation settings for registration
type AuthServiceConfig struct {
	MinPasswordLength int
}

// AuthService implements staff authentication
type AuthService struct {
	userRepo       domain.UserRepository
	passwordHasher password.Hasher
	jwtManager     *jwt.Manager
	config         AuthServiceConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo domain.UserRepository,
	passwordHasher password.Hasher,
	jwtManager *jwt.Manager,
	config AuthServiceConfig,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		jwtManager:     jwtManager,
		config:         config,
	}
}

// Register creates a new staff account and returns a token
func (s *AuthService) Register(ctx context.Context, login, userPassword string) (string, error) {
	if login == "" || len(userPassword) < s.config.MinPasswordLength {
		return "", ErrInvalidInput
	}

	hash, err := s.passwordHasher.Hash(userPassword)
	if err != nil {
		return "", fmt.Errorf("auth service: failed to hash password for user %q: %w", login, err)
	}

	user, err := s.userRepo.CreateUser(ctx, login, hash, domain.RoleStaff)
	if err != nil {
		if errors.Is(err, postgres.ErrUserExists) {
			return "", ErrUserExists
		}
		return "", fmt.Errorf("auth service: failed to register user %q: %w", login, err)
	}

	token, err := s.jwtManager.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("auth service: failed to generate token for user %d: %w", user.ID, err)
	}

	return token, nil
}

// Login authenticates a staff user and returns a token
func (s *AuthService) Login(ctx context.Context, login, userPassword string) (string, error) {
	if login == "" || userPassword == "" {
		return "", ErrInvalidInput
	}

	user, err := s.userRepo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("auth service: failed to get user %q: %w", login, err)
	}

	if err := s.passwordHasher.Check(user.PasswordHash, userPassword); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("auth service: failed to generate token for user %d: %w", user.ID, err)
	}

	return token, nil
}
