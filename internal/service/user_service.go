package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cadastro/internal/errors"
	"cadastro/internal/model"
	"cadastro/internal/repository"
)

const bcryptCost = 10

// CreateUserInput carries the fields accepted at user creation.
type CreateUserInput struct {
	Name       string
	Email      string
	Password   string
	Profession string
}

// UpdateUserInput carries a partial update: nil fields are left untouched.
type UpdateUserInput struct {
	Name       *string
	Email      *string
	Password   *string
	Profession *string
}

// UserService exposes the user workflow.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*model.UserView, error)
	List(ctx context.Context) ([]model.UserView, error)
	Get(ctx context.Context, id uuid.UUID) (*model.UserView, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*model.UserView, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Create registers a new user. Uniqueness is pre-checked by email lookup,
// with the store's unique index as the backstop for concurrent creations.
func (s *userService) Create(ctx context.Context, in CreateUserInput) (*model.UserView, error) {
	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, errors.ErrUserAlreadyExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hashed),
		Profession:   in.Profession,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user.View(), nil
}

func (s *userService) List(ctx context.Context) ([]model.UserView, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	views := make([]model.UserView, 0, len(users))
	for i := range users {
		views = append(views, *users[i].View())
	}
	return views, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.UserView, error) {
	user, err := s.repo.FindByIDWithAddress(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user.View(), nil
}

// Update merges only the supplied fields into the stored record. A supplied
// password is re-hashed before persisting.
func (s *userService) Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*model.UserView, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Profession != nil {
		user.Profession = *in.Profession
	}
	if in.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user.View(), nil
}

// Remove deletes the user and, through the repository, its owned address.
func (s *userService) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
