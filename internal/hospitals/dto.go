package hospitals

import (
	"time"

	"github.com/google/uuid"

	"github.com/districthealth/medavail-backend/pkg/db/models"
	"github.com/districthealth/medavail-backend/pkg/enums"
	"github.com/districthealth/medavail-backend/pkg/freshness"
)

// ListFilter narrows the public listing. Empty fields match everything.
type ListFilter struct {
	District string
	ID       *uuid.UUID
}

// BedsDTO is the public view of a bed inventory row.
type BedsDTO struct {
	ICUTotal           int       `json:"icu_total"`
	ICUAvailable       int       `json:"icu_available"`
	GeneralTotal       int       `json:"general_total"`
	GeneralAvailable   int       `json:"general_available"`
	PediatricTotal     int       `json:"pediatric_total"`
	PediatricAvailable int       `json:"pediatric_available"`
	MaternityTotal     int       `json:"maternity_total"`
	MaternityAvailable int       `json:"maternity_available"`
	IsolationTotal     int       `json:"isolation_total"`
	IsolationAvailable int       `json:"isolation_available"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// HospitalDTO is a hospital as shown on the public dashboard.
type HospitalDTO struct {
	ID              uuid.UUID             `json:"id"`
	Name            string                `json:"name"`
	District        string                `json:"district"`
	Latitude        float64               `json:"latitude"`
	Longitude       float64               `json:"longitude"`
	Address         string                `json:"address"`
	PhoneEmergency  string                `json:"phone_emergency"`
	Email           *string               `json:"email,omitempty"`
	Website         *string               `json:"website,omitempty"`
	Type            *string               `json:"type,omitempty"`
	Description     *string               `json:"description,omitempty"`
	Image           *string               `json:"image,omitempty"`
	Facilities      []string              `json:"facilities"`
	Photos          []string              `json:"photos"`
	LastUpdatedAt   *time.Time            `json:"last_updated_at,omitempty"`
	Beds            *BedsDTO              `json:"beds,omitempty"`
	FreshnessStatus enums.FreshnessStatus `json:"freshness_status"`
}

// RegisterRequest is the public self-registration payload.
type RegisterRequest struct {
	Name           string   `json:"name" validate:"required,max=200"`
	District       string   `json:"district" validate:"required,max=100"`
	Latitude       float64  `json:"latitude" validate:"min=-90,max=90"`
	Longitude      float64  `json:"longitude" validate:"min=-180,max=180"`
	Address        string   `json:"address" validate:"required"`
	PhoneEmergency string   `json:"phone_emergency" validate:"required,max=50"`
	Email          *string  `json:"email,omitempty" validate:"omitempty,email"`
	Website        *string  `json:"website,omitempty" validate:"omitempty,url"`
	Type           *string  `json:"type,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Image          *string  `json:"image,omitempty"`
	Facilities     []string `json:"facilities,omitempty"`
	Photos         []string `json:"photos,omitempty"`
}

// FromModel maps a loaded hospital and classifies its reporting age.
func FromModel(h models.Hospital, thresholds freshness.Thresholds, now time.Time) HospitalDTO {
	out := HospitalDTO{
		ID:             h.ID,
		Name:           h.Name,
		District:       h.District,
		Latitude:       h.Latitude,
		Longitude:      h.Longitude,
		Address:        h.Address,
		PhoneEmergency: h.PhoneEmergency,
		Email:          h.Email,
		Website:        h.Website,
		Type:           h.Type,
		Description:    h.Description,
		Image:          h.Image,
		Facilities:     append([]string{}, h.Facilities...),
		Photos:         append([]string{}, h.Photos...),
		LastUpdatedAt:  h.LastUpdatedAt,
	}

	var invUpdated *time.Time
	if b := h.BedInventory; b != nil {
		invUpdated = &b.UpdatedAt
		out.Beds = &BedsDTO{
			ICUTotal:           b.ICUTotal,
			ICUAvailable:       b.ICUAvailable,
			GeneralTotal:       b.GeneralTotal,
			GeneralAvailable:   b.GeneralAvailable,
			PediatricTotal:     b.PediatricTotal,
			PediatricAvailable: b.PediatricAvailable,
			MaternityTotal:     b.MaternityTotal,
			MaternityAvailable: b.MaternityAvailable,
			IsolationTotal:     b.IsolationTotal,
			IsolationAvailable: b.IsolationAvailable,
			UpdatedAt:          b.UpdatedAt,
		}
	}
	last := freshness.EffectiveLastUpdate(invUpdated, h.LastUpdatedAt)
	out.FreshnessStatus = thresholds.Classify(now.Sub(last))
	return out
}
