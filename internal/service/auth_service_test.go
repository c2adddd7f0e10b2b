package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cadastro/internal/auth"
	"cadastro/internal/model"
)

func TestAuthService_ValidateCredentials(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("123456789"), 10)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectMatch   bool
		expectedError bool
	}{
		{
			name:     "matching credentials",
			email:    "marcos@mail.com",
			password: "123456789",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "marcos@mail.com").Return(&model.User{
					ID:           uuid.New(),
					Email:        "marcos@mail.com",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectMatch: true,
		},
		{
			name:     "wrong password is no match, not an error",
			email:    "marcos@mail.com",
			password: "wrong-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "marcos@mail.com").Return(&model.User{
					Email:        "marcos@mail.com",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectMatch: false,
		},
		{
			name:     "unknown email is no match, not an error",
			email:    "nobody@mail.com",
			password: "123456789",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@mail.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectMatch: false,
		},
		{
			name:     "store failure propagates",
			email:    "marcos@mail.com",
			password: "123456789",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "marcos@mail.com").Return(nil, gorm.ErrInvalidDB)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret", time.Hour)
			svc := NewAuthService(mockRepo, jwtService)

			identity, err := svc.ValidateCredentials(context.Background(), tt.email, tt.password)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, identity)
			} else if tt.expectMatch {
				assert.NoError(t, err)
				assert.NotNil(t, identity)
				assert.Equal(t, tt.email, identity.Email)
			} else {
				assert.NoError(t, err)
				assert.Nil(t, identity)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_IssueToken(t *testing.T) {
	userID := uuid.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "marcos@mail.com").Return(&model.User{
		ID:    userID,
		Email: "marcos@mail.com",
	}, nil)

	jwtService := auth.NewJWTService("test-secret", time.Hour)
	svc := NewAuthService(mockRepo, jwtService)

	token, err := svc.IssueToken(context.Background(), "marcos@mail.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// The subject claim carries the user id, the payload carries the email.
	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "marcos@mail.com", claims.Email)

	parsedID, err := claims.UserID()
	assert.NoError(t, err)
	assert.Equal(t, userID, parsedID)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_IssueToken_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "nobody@mail.com").Return(nil, gorm.ErrRecordNotFound)

	jwtService := auth.NewJWTService("test-secret", time.Hour)
	svc := NewAuthService(mockRepo, jwtService)

	token, err := svc.IssueToken(context.Background(), "nobody@mail.com")
	assert.Error(t, err)
	assert.Empty(t, token)
	mockRepo.AssertExpectations(t)
}
