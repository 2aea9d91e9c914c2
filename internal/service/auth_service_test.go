package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"projman/internal/auth"
	apperrors "projman/internal/errors"
	"projman/internal/model"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		login         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			login:    "alice",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByLogin", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "login already taken",
			login:    "bob",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByLogin", mock.Anything, "bob").Return(&model.User{Login: "bob"}, nil)
			},
			expectedError: apperrors.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret", time.Hour)
			svc := NewAuthService(mockRepo, jwtService, new(MockUserCache))

			user, err := svc.Register(context.Background(), tt.login, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.login, user.Login)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		login         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			login:    "alice",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByLogin", mock.Anything, "alice").Return(&model.User{
					ID:           1,
					Login:        "alice",
					PasswordHash: string(hashed),
				}, nil)
			},
		},
		{
			name:     "wrong password",
			login:    "alice",
			password: "not-the-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByLogin", mock.Anything, "alice").Return(&model.User{
					ID:           1,
					Login:        "alice",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			login:    "ghost",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByLogin", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret", time.Hour)
			svc := NewAuthService(mockRepo, jwtService, new(MockUserCache))

			token, err := svc.Login(context.Background(), tt.login, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)

				subject, err := jwtService.ValidateToken(token)
				assert.NoError(t, err)
				assert.Equal(t, tt.login, subject)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ResolveUser(t *testing.T) {
	cached := &model.User{ID: 1, Login: "alice"}

	t.Run("cache hit skips the database", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockCache := new(MockUserCache)
		mockCache.On("Get", mock.Anything, "alice").Return(cached, true)

		svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret", time.Hour), mockCache)
		user, err := svc.ResolveUser(context.Background(), "alice")

		assert.NoError(t, err)
		assert.Equal(t, cached, user)
		mockRepo.AssertNotCalled(t, "FindByLogin")
		mockCache.AssertExpectations(t)
	})

	t.Run("cache miss loads and caches", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockCache := new(MockUserCache)
		mockCache.On("Get", mock.Anything, "alice").Return(nil, false)
		mockRepo.On("FindByLogin", mock.Anything, "alice").Return(cached, nil)
		mockCache.On("Set", mock.Anything, cached).Return()

		svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret", time.Hour), mockCache)
		user, err := svc.ResolveUser(context.Background(), "alice")

		assert.NoError(t, err)
		assert.Equal(t, cached, user)
		mockRepo.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("unknown subject is an invalid token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockCache := new(MockUserCache)
		mockCache.On("Get", mock.Anything, "ghost").Return(nil, false)
		mockRepo.On("FindByLogin", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret", time.Hour), mockCache)
		user, err := svc.ResolveUser(context.Background(), "ghost")

		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
		assert.Nil(t, user)
	})
}
