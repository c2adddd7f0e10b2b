package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cadastro/internal/errors"
	"cadastro/internal/model"
	"cadastro/internal/repository"
)

// CreateAddressInput carries the fields accepted at address creation.
type CreateAddressInput struct {
	Road        string
	District    string
	City        string
	HouseNumber int
	Cep         string
	State       string
	Complement  string
}

// UpdateAddressInput carries a partial update: nil fields are left untouched.
// The owner cannot be changed after creation.
type UpdateAddressInput struct {
	Road        *string
	District    *string
	City        *string
	HouseNumber *int
	Cep         *string
	State       *string
	Complement  *string
}

// AddressService exposes the address workflow.
type AddressService interface {
	ValidateOwner(ctx context.Context, userID uuid.UUID) (*model.User, error)
	Create(ctx context.Context, in CreateAddressInput, userID uuid.UUID) (*model.AddressView, error)
	List(ctx context.Context) ([]model.AddressView, error)
	Get(ctx context.Context, id uuid.UUID) (*model.AddressView, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateAddressInput) (*model.AddressView, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type addressService struct {
	repo     repository.AddressRepository
	userRepo repository.UserRepository
}

// NewAddressService builds an AddressService.
func NewAddressService(repo repository.AddressRepository, userRepo repository.UserRepository) AddressService {
	return &addressService{repo: repo, userRepo: userRepo}
}

// ValidateOwner resolves the prospective owner and enforces the
// one-address-per-user rule. An unknown user id is an invalid input at
// creation time, not a not-found.
func (s *addressService) ValidateOwner(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByIDWithAddress(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrInvalidUserID
		}
		return nil, fmt.Errorf("find owner: %w", err)
	}

	if user.Address != nil {
		return nil, errors.ErrAddressAlreadyRegistered
	}

	return user, nil
}

func (s *addressService) Create(ctx context.Context, in CreateAddressInput, userID uuid.UUID) (*model.AddressView, error) {
	owner, err := s.ValidateOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	address := &model.Address{
		Road:        in.Road,
		District:    in.District,
		City:        in.City,
		HouseNumber: in.HouseNumber,
		Cep:         in.Cep,
		State:       in.State,
		Complement:  in.Complement,
		OwnerID:     owner.ID,
	}

	if err := s.repo.Create(ctx, address); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrAddressAlreadyRegistered
		}
		return nil, fmt.Errorf("create address: %w", err)
	}

	address.Owner = owner
	return address.View(), nil
}

func (s *addressService) List(ctx context.Context) ([]model.AddressView, error) {
	addresses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	views := make([]model.AddressView, 0, len(addresses))
	for i := range addresses {
		views = append(views, *addresses[i].View())
	}
	return views, nil
}

// Get resolves a single address by id together with its owner.
func (s *addressService) Get(ctx context.Context, id uuid.UUID) (*model.AddressView, error) {
	address, err := s.repo.FindByIDWithOwner(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAddressNotFound
		}
		return nil, fmt.Errorf("find address: %w", err)
	}
	return address.View(), nil
}

func (s *addressService) Update(ctx context.Context, id uuid.UUID, in UpdateAddressInput) (*model.AddressView, error) {
	address, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAddressNotFound
		}
		return nil, fmt.Errorf("find address: %w", err)
	}

	if in.Road != nil {
		address.Road = *in.Road
	}
	if in.District != nil {
		address.District = *in.District
	}
	if in.City != nil {
		address.City = *in.City
	}
	if in.HouseNumber != nil {
		address.HouseNumber = *in.HouseNumber
	}
	if in.Cep != nil {
		address.Cep = *in.Cep
	}
	if in.State != nil {
		address.State = *in.State
	}
	if in.Complement != nil {
		address.Complement = *in.Complement
	}

	if err := s.repo.Update(ctx, address); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}

	return address.View(), nil
}

func (s *addressService) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrAddressNotFound
		}
		return fmt.Errorf("find address: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}
