package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/districthealth/medavail-backend/pkg/enums"
)

// User is an administrator account. Scoped roles carry exactly one binding.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email        string     `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	FullName     string     `gorm:"column:full_name;not null"`
	Role         enums.Role `gorm:"column:role;not null"`
	HospitalID   *uuid.UUID `gorm:"column:hospital_id;type:uuid"`
	BloodBankID  *uuid.UUID `gorm:"column:blood_bank_id;type:uuid"`
	IsActive     bool       `gorm:"column:is_active;not null"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string { return "users" }
