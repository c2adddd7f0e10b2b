package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cadastro/internal/auth"
	"cadastro/internal/repository"
)

// ErrInvalidCredentials is returned when email or password is incorrect.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Identity is the minimal caller identity produced by a credential check.
type Identity struct {
	Email string `json:"email"`
}

// AuthService handles authentication operations.
type AuthService interface {
	// ValidateCredentials compares the plaintext password against the stored
	// hash. A nil identity with a nil error means "no match": absent or wrong
	// credentials are a normal outcome, not a fault.
	ValidateCredentials(ctx context.Context, email, password string) (*Identity, error)
	// IssueToken signs a bearer token for the user with the given email. The
	// caller is expected to have validated the credentials first.
	IssueToken(ctx context.Context, email string) (string, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (s *authService) ValidateCredentials(ctx context.Context, email, password string) (*Identity, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}

	return &Identity{Email: user.Email}, nil
}

func (s *authService) IssueToken(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}
