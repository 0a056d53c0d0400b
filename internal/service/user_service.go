package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenLifetime is used when no expiry is configured.
const DefaultTokenLifetime = 30 * time.Minute

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so login failures never reveal which factor failed.
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

// UserService defines the interface for account and authentication logic
type UserService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (token string, err error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, skip, limit int) ([]*domain.User, error)
}

// Claims is the JWT claim set: subject carries the username, plus expiry,
// issued-at and a unique token ID.
type Claims struct {
	jwt.RegisteredClaims
}

type userService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	tokenLifetime time.Duration
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository, jwtSecret string, tokenLifetime time.Duration) UserService {
	if tokenLifetime <= 0 {
		tokenLifetime = DefaultTokenLifetime
	}
	return &userService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		tokenLifetime: tokenLifetime,
	}
}

// Register creates a new user account with an argon2id password hash.
func (s *userService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	// Check if username is taken. The unique constraint on users.username
	// catches the race where two registrations pass this check at once.
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil && err != repository.ErrUserNotFound {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, repository.ErrUsernameTaken
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == repository.ErrUsernameTaken {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and issues a signed bearer token.
func (s *userService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	match, err := verifyPassword(user.PasswordHash, password)
	if err != nil {
		return "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		return "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}

// GetByUsername retrieves a user by username.
func (s *userService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// List retrieves users within the skip/limit window.
func (s *userService) List(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// generateToken signs an HS256 bearer token with the username as subject.
func (s *userService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
