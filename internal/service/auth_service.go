package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"projman/internal/auth"
	apperrors "projman/internal/errors"
	"projman/internal/model"
	"projman/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login and current-user resolution.
type AuthService interface {
	Register(ctx context.Context, login, password string) (*model.User, error)
	Login(ctx context.Context, login, password string) (token string, err error)
	// ResolveUser maps a validated token subject to a user record,
	// cache-aside through Redis.
	ResolveUser(ctx context.Context, login string) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	userCache  auth.UserCacheInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, userCache auth.UserCacheInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		userCache:  userCache,
	}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *authService) Register(ctx context.Context, login, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByLogin(ctx, login)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Login:        login,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns a signed access token. Bad login
// and bad password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, login, password string) (string, error) {
	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.Login)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// ResolveUser looks up the user behind a token subject.
func (s *authService) ResolveUser(ctx context.Context, login string) (*model.User, error) {
	if user, ok := s.userCache.Get(ctx, login); ok {
		return user, nil
	}

	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	s.userCache.Set(ctx, user)
	return user, nil
}
