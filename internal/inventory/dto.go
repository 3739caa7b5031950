package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/districthealth/medavail-backend/pkg/db/models"
	"github.com/districthealth/medavail-backend/pkg/enums"
)

// BedsDTO is the row returned after a bed update.
type BedsDTO struct {
	ID                 uuid.UUID  `json:"id"`
	HospitalID         uuid.UUID  `json:"hospital_id"`
	ICUTotal           int        `json:"icu_total"`
	ICUAvailable       int        `json:"icu_available"`
	GeneralTotal       int        `json:"general_total"`
	GeneralAvailable   int        `json:"general_available"`
	PediatricTotal     int        `json:"pediatric_total"`
	PediatricAvailable int        `json:"pediatric_available"`
	MaternityTotal     int        `json:"maternity_total"`
	MaternityAvailable int        `json:"maternity_available"`
	IsolationTotal     int        `json:"isolation_total"`
	IsolationAvailable int        `json:"isolation_available"`
	UpdatedAt          time.Time  `json:"updated_at"`
	UpdatedByID        *uuid.UUID `json:"updated_by_id,omitempty"`
}

// StockDTO is the row returned after a blood stock update.
type StockDTO struct {
	ID             uuid.UUID        `json:"id"`
	BloodBankID    uuid.UUID        `json:"blood_bank_id"`
	BloodGroup     enums.BloodGroup `json:"blood_group"`
	UnitsAvailable int              `json:"units_available"`
	UpdatedAt      time.Time        `json:"updated_at"`
	UpdatedByID    *uuid.UUID       `json:"updated_by_id,omitempty"`
}

func BedsFromModel(row *models.BedInventory) *BedsDTO {
	if row == nil {
		return nil
	}
	return &BedsDTO{
		ID:                 row.ID,
		HospitalID:         row.HospitalID,
		ICUTotal:           row.ICUTotal,
		ICUAvailable:       row.ICUAvailable,
		GeneralTotal:       row.GeneralTotal,
		GeneralAvailable:   row.GeneralAvailable,
		PediatricTotal:     row.PediatricTotal,
		PediatricAvailable: row.PediatricAvailable,
		MaternityTotal:     row.MaternityTotal,
		MaternityAvailable: row.MaternityAvailable,
		IsolationTotal:     row.IsolationTotal,
		IsolationAvailable: row.IsolationAvailable,
		UpdatedAt:          row.UpdatedAt,
		UpdatedByID:        row.UpdatedByID,
	}
}

func StockFromModel(row *models.BloodInventory) *StockDTO {
	if row == nil {
		return nil
	}
	return &StockDTO{
		ID:             row.ID,
		BloodBankID:    row.BloodBankID,
		BloodGroup:     row.BloodGroup,
		UnitsAvailable: row.UnitsAvailable,
		UpdatedAt:      row.UpdatedAt,
		UpdatedByID:    row.UpdatedByID,
	}
}
