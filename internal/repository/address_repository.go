package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cadastro/internal/model"
)

// AddressRepository defines address persistence operations.
type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) error
	Update(ctx context.Context, address *model.Address) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Address, error)
	FindByIDWithOwner(ctx context.Context, id uuid.UUID) (*model.Address, error)
	List(ctx context.Context) ([]model.Address, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository builds a GORM-backed repository.
func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *addressRepository) Update(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Save(address).Error
}

func (r *addressRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	var address model.Address
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&address).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

// FindByIDWithOwner loads the address together with its owner relation.
func (r *addressRepository) FindByIDWithOwner(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	var address model.Address
	if err := r.db.WithContext(ctx).Preload("Owner").
		Where("id = ?", id).First(&address).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) List(ctx context.Context) ([]model.Address, error) {
	var addresses []model.Address
	if err := r.db.WithContext(ctx).Preload("Owner").Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *addressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Address{}).Error
}
