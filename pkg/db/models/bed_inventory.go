package models

import (
	"time"

	"github.com/google/uuid"
)

// BedInventory holds the per-category bed counts of one hospital.
type BedInventory struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	HospitalID         uuid.UUID  `gorm:"column:hospital_id;type:uuid;not null;uniqueIndex"`
	ICUTotal           int        `gorm:"column:icu_total;not null"`
	ICUAvailable       int        `gorm:"column:icu_available;not null"`
	GeneralTotal       int        `gorm:"column:general_total;not null"`
	GeneralAvailable   int        `gorm:"column:general_available;not null"`
	PediatricTotal     int        `gorm:"column:pediatric_total;not null"`
	PediatricAvailable int        `gorm:"column:pediatric_available;not null"`
	MaternityTotal     int        `gorm:"column:maternity_total;not null"`
	MaternityAvailable int        `gorm:"column:maternity_available;not null"`
	IsolationTotal     int        `gorm:"column:isolation_total;not null"`
	IsolationAvailable int        `gorm:"column:isolation_available;not null"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;not null"`
	UpdatedByID        *uuid.UUID `gorm:"column:updated_by_id;type:uuid"`
}

func (BedInventory) TableName() string { return "bed_inventory" }
