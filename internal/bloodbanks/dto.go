package bloodbanks

import (
	"time"

	"github.com/google/uuid"

	"github.com/districthealth/medavail-backend/pkg/db/models"
	"github.com/districthealth/medavail-backend/pkg/enums"
)

// StockDTO is one blood group line of a bank.
type StockDTO struct {
	BloodGroup     enums.BloodGroup `json:"blood_group"`
	UnitsAvailable int              `json:"units_available"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// BloodBankDTO is a blood bank as shown on the public dashboard.
type BloodBankDTO struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	District      string     `json:"district"`
	Latitude      float64    `json:"latitude"`
	Longitude     float64    `json:"longitude"`
	Address       string     `json:"address"`
	Phone         string     `json:"phone"`
	Email         *string    `json:"email,omitempty"`
	LastUpdatedAt *time.Time `json:"last_updated_at,omitempty"`
	Inventory     []StockDTO `json:"inventory"`
}

// FromModel maps a loaded bank. Stock lines follow the canonical group order.
func FromModel(b models.BloodBank) BloodBankDTO {
	byGroup := make(map[enums.BloodGroup]models.BloodInventory, len(b.Inventory))
	for _, row := range b.Inventory {
		byGroup[row.BloodGroup] = row
	}
	stock := make([]StockDTO, 0, len(byGroup))
	for _, group := range enums.BloodGroups() {
		row, ok := byGroup[group]
		if !ok {
			continue
		}
		stock = append(stock, StockDTO{
			BloodGroup:     row.BloodGroup,
			UnitsAvailable: row.UnitsAvailable,
			UpdatedAt:      row.UpdatedAt,
		})
	}
	return BloodBankDTO{
		ID:            b.ID,
		Name:          b.Name,
		District:      b.District,
		Latitude:      b.Latitude,
		Longitude:     b.Longitude,
		Address:       b.Address,
		Phone:         b.Phone,
		Email:         b.Email,
		LastUpdatedAt: b.LastUpdatedAt,
		Inventory:     stock,
	}
}
