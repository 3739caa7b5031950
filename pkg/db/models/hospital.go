package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/districthealth/medavail-backend/pkg/db/types"
)

// Hospital is a care facility reporting bed availability.
type Hospital struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Name           string             `gorm:"column:name;not null"`
	District       string             `gorm:"column:district;not null;index"`
	Latitude       float64            `gorm:"column:latitude;not null"`
	Longitude      float64            `gorm:"column:longitude;not null"`
	Address        string             `gorm:"column:address;not null"`
	PhoneEmergency string             `gorm:"column:phone_emergency;not null"`
	Email          *string            `gorm:"column:email"`
	Website        *string            `gorm:"column:website"`
	Type           *string            `gorm:"column:type"`
	Description    *string            `gorm:"column:description"`
	Image          *string            `gorm:"column:image"`
	Facilities     dbtypes.StringList `gorm:"column:facilities;not null"`
	Photos         dbtypes.StringList `gorm:"column:photos;not null"`
	IsActive       bool               `gorm:"column:is_active;not null"`
	LastUpdatedAt  *time.Time         `gorm:"column:last_updated_at"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`

	BedInventory *BedInventory `gorm:"foreignKey:HospitalID"`
}

func (Hospital) TableName() string { return "hospitals" }
