package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cadastro/internal/errors"
	"cadastro/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDWithAddress(ctx context.Context, id uuid.UUID) (*model.User, error) {
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

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name          string
		input         CreateUserInput
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful creation",
			input: CreateUserInput{
				Name:       "Marcos",
				Email:      "marcos@mail.com",
				Password:   "123456789",
				Profession: "Pentester",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "marcos@mail.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "email already registered",
			input: CreateUserInput{
				Name:     "Marcos",
				Email:    "taken@mail.com",
				Password: "123456789",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@mail.com").Return(&model.User{Email: "taken@mail.com"}, nil)
			},
			expectedError: errors.ErrUserAlreadyExists,
		},
		{
			name: "concurrent creation hits unique index",
			input: CreateUserInput{
				Name:     "Marcos",
				Email:    "race@mail.com",
				Password: "123456789",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "race@mail.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: errors.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo)
			view, err := svc.Create(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, view)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, view)
				assert.Equal(t, tt.input.Name, view.Name)
				assert.Equal(t, tt.input.Email, view.Email)
				assert.Equal(t, tt.input.Profession, view.Profession)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Create_HashesPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "marcos@mail.com").Return(nil, gorm.ErrRecordNotFound)

	var persisted *model.User
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*model.User)
		}).Return(nil)

	svc := NewUserService(mockRepo)
	_, err := svc.Create(context.Background(), CreateUserInput{
		Name:     "Marcos",
		Email:    "marcos@mail.com",
		Password: "123456789",
	})

	assert.NoError(t, err)
	assert.NotNil(t, persisted)
	assert.NotEqual(t, "123456789", persisted.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(persisted.PasswordHash), []byte("123456789")))
}

func TestUserService_Get(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "found with address",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByIDWithAddress", mock.Anything, userID).Return(&model.User{
					ID:    userID,
					Name:  "Marcos",
					Email: "marcos@mail.com",
					Address: &model.Address{
						ID:      uuid.New(),
						Road:    "Rua A",
						OwnerID: userID,
					},
				}, nil)
			},
			expectedError: nil,
		},
		{
			name: "not found",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByIDWithAddress", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo)
			view, err := svc.Get(context.Background(), userID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, view)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, userID, view.ID)
				assert.NotNil(t, view.Address)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Update_MergesOnlySuppliedFields(t *testing.T) {
	userID := uuid.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
		ID:           userID,
		Name:         "Marcos",
		Email:        "marcos@mail.com",
		PasswordHash: "stored-hash",
		Profession:   "Pentester",
	}, nil)

	var persisted *model.User
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*model.User)
		}).Return(nil)

	newName := "Marcos Silva"
	svc := NewUserService(mockRepo)
	view, err := svc.Update(context.Background(), userID, UpdateUserInput{Name: &newName})

	assert.NoError(t, err)
	assert.Equal(t, "Marcos Silva", view.Name)
	assert.Equal(t, "Marcos Silva", persisted.Name)
	// Omitted fields keep their prior values.
	assert.Equal(t, "marcos@mail.com", persisted.Email)
	assert.Equal(t, "stored-hash", persisted.PasswordHash)
	assert.Equal(t, "Pentester", persisted.Profession)

	mockRepo.AssertExpectations(t)
}

func TestUserService_Update_RehashesSuppliedPassword(t *testing.T) {
	userID := uuid.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
		ID:           userID,
		Email:        "marcos@mail.com",
		PasswordHash: "stored-hash",
	}, nil)

	var persisted *model.User
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*model.User)
		}).Return(nil)

	newPassword := "new-password-1"
	svc := NewUserService(mockRepo)
	_, err := svc.Update(context.Background(), userID, UpdateUserInput{Password: &newPassword})

	assert.NoError(t, err)
	assert.NotEqual(t, "stored-hash", persisted.PasswordHash)
	assert.NotEqual(t, newPassword, persisted.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(persisted.PasswordHash), []byte(newPassword)))
}

func TestUserService_Update_NotFound(t *testing.T) {
	userID := uuid.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

	newName := "whoever"
	svc := NewUserService(mockRepo)
	view, err := svc.Update(context.Background(), userID, UpdateUserInput{Name: &newName})

	assert.Equal(t, errors.ErrUserNotFound, err)
	assert.Nil(t, view)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Remove(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful removal",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
				m.On("Delete", mock.Anything, userID).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "not found",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo)
			err := svc.Remove(context.Background(), userID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_List_StripsPasswordHash(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything).Return([]model.User{
		{ID: uuid.New(), Name: "A", Email: "a@mail.com", PasswordHash: "hash-a"},
		{ID: uuid.New(), Name: "B", Email: "b@mail.com", PasswordHash: "hash-b"},
	}, nil)

	svc := NewUserService(mockRepo)
	views, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, views, 2)
	// UserView has no password field at all; spot-check the projection.
	assert.Equal(t, "a@mail.com", views[0].Email)
	assert.Equal(t, "B", views[1].Name)
	mockRepo.AssertExpectations(t)
}
