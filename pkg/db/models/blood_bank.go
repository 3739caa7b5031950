package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/districthealth/medavail-backend/pkg/enums"
)

// BloodBank is a facility reporting stock per blood group.
type BloodBank struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name          string     `gorm:"column:name;not null"`
	District      string     `gorm:"column:district;not null;index"`
	Latitude      float64    `gorm:"column:latitude;not null"`
	Longitude     float64    `gorm:"column:longitude;not null"`
	Address       string     `gorm:"column:address;not null"`
	Phone         string     `gorm:"column:phone;not null"`
	Email         *string    `gorm:"column:email"`
	LastUpdatedAt *time.Time `gorm:"column:last_updated_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`

	Inventory []BloodInventory `gorm:"foreignKey:BloodBankID"`
}

func (BloodBank) TableName() string { return "blood_banks" }

// BloodInventory is the stock of a single blood group at one bank.
type BloodInventory struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	BloodBankID    uuid.UUID        `gorm:"column:blood_bank_id;type:uuid;not null;uniqueIndex:ux_blood_inventory_bank_group"`
	BloodGroup     enums.BloodGroup `gorm:"column:blood_group;not null;uniqueIndex:ux_blood_inventory_bank_group"`
	UnitsAvailable int              `gorm:"column:units_available;not null"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;not null"`
	UpdatedByID    *uuid.UUID       `gorm:"column:updated_by_id;type:uuid"`
}

func (BloodInventory) TableName() string { return "blood_inventory" }
