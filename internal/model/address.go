package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address represents the single address a user may register. The unique
// index on OwnerID enforces the one-address-per-user rule at the store
// level, so concurrent creations cannot slip past the service check.
type Address struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Road        string    `json:"road" gorm:"size:150;not null"`
	District    string    `json:"district" gorm:"size:150;not null"`
	City        string    `json:"city" gorm:"size:150;not null"`
	HouseNumber int       `json:"house_number" gorm:"not null"`
	Cep         string    `json:"cep" gorm:"size:8;not null"`
	State       string    `json:"state" gorm:"size:2;not null"`
	Complement  string    `json:"complement,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	OwnerID uuid.UUID `json:"owner_id" gorm:"type:char(36);uniqueIndex;not null"`
	Owner   *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AddressView is the public projection of an Address. The owner, when
// loaded, is projected through UserView so its password hash never leaks.
type AddressView struct {
	ID          uuid.UUID `json:"id"`
	Road        string    `json:"road"`
	District    string    `json:"district"`
	City        string    `json:"city"`
	HouseNumber int       `json:"house_number"`
	Cep         string    `json:"cep"`
	State       string    `json:"state"`
	Complement  string    `json:"complement,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Owner       *UserView `json:"owner,omitempty"`
}

// View projects the address into its public form.
func (a *Address) View() *AddressView {
	v := &AddressView{
		ID:          a.ID,
		Road:        a.Road,
		District:    a.District,
		City:        a.City,
		HouseNumber: a.HouseNumber,
		Cep:         a.Cep,
		State:       a.State,
		Complement:  a.Complement,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		OwnerID:     a.OwnerID,
	}
	if a.Owner != nil {
		v.Owner = a.Owner.View()
	}
	return v
}
