package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/districthealth/medavail-backend/pkg/db/models"
	"github.com/districthealth/medavail-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        enums.Role `json:"role"`
	HospitalID  *uuid.UUID `json:"hospital_id,omitempty"`
	BloodBankID *uuid.UUID `json:"blood_bank_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	FullName     string
	Role         enums.Role
	HospitalID   *uuid.UUID
	BloodBankID  *uuid.UUID
	IsActive     *bool
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        u.Role,
		HospitalID:  u.HospitalID,
		BloodBankID: u.BloodBankID,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	return &models.User{
		ID:           uuid.New(),
		Email:        NormalizeEmail(c.Email),
		PasswordHash: c.PasswordHash,
		FullName:     c.FullName,
		Role:         c.Role,
		HospitalID:   c.HospitalID,
		BloodBankID:  c.BloodBankID,
		IsActive:     isActive,
	}
}
