package inventory

import (
	"fmt"

	"github.com/districthealth/medavail-backend/pkg/db/models"
	"github.com/districthealth/medavail-backend/pkg/enums"
	pkgerrors "github.com/districthealth/medavail-backend/pkg/errors"
)

// BedPatch names every mutable bed field. Nil fields are left unchanged.
type BedPatch struct {
	ICUTotal           *int `json:"icu_total,omitempty"`
	ICUAvailable       *int `json:"icu_available,omitempty"`
	GeneralTotal       *int `json:"general_total,omitempty"`
	GeneralAvailable   *int `json:"general_available,omitempty"`
	PediatricTotal     *int `json:"pediatric_total,omitempty"`
	PediatricAvailable *int `json:"pediatric_available,omitempty"`
	MaternityTotal     *int `json:"maternity_total,omitempty"`
	MaternityAvailable *int `json:"maternity_available,omitempty"`
	IsolationTotal     *int `json:"isolation_total,omitempty"`
	IsolationAvailable *int `json:"isolation_available,omitempty"`
}

type bedField struct {
	name  string
	patch *int
	row   *int
}

func (p *BedPatch) fields(row *models.BedInventory) []bedField {
	if row == nil {
		row = &models.BedInventory{}
	}
	return []bedField{
		{"icu_total", p.ICUTotal, &row.ICUTotal},
		{"icu_available", p.ICUAvailable, &row.ICUAvailable},
		{"general_total", p.GeneralTotal, &row.GeneralTotal},
		{"general_available", p.GeneralAvailable, &row.GeneralAvailable},
		{"pediatric_total", p.PediatricTotal, &row.PediatricTotal},
		{"pediatric_available", p.PediatricAvailable, &row.PediatricAvailable},
		{"maternity_total", p.MaternityTotal, &row.MaternityTotal},
		{"maternity_available", p.MaternityAvailable, &row.MaternityAvailable},
		{"isolation_total", p.IsolationTotal, &row.IsolationTotal},
		{"isolation_available", p.IsolationAvailable, &row.IsolationAvailable},
	}
}

// Validate rejects empty patches and negative counts.
func (p BedPatch) Validate() error {
	set := 0
	negative := map[string]any{}
	for _, f := range p.fields(nil) {
		if f.patch == nil {
			continue
		}
		set++
		if *f.patch < 0 {
			negative[f.name] = "must be >= 0"
		}
	}
	if set == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one bed field is required")
	}
	if len(negative) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "bed counts must be non-negative").WithDetails(negative)
	}
	return nil
}

// Apply writes the set fields onto row.
func (p BedPatch) Apply(row *models.BedInventory) {
	for _, f := range p.fields(row) {
		if f.patch != nil {
			*f.row = *f.patch
		}
	}
}

// checkCapacity reports every category whose available count exceeds its total.
func checkCapacity(row *models.BedInventory) error {
	pairs := []struct {
		name             string
		total, available int
	}{
		{"icu", row.ICUTotal, row.ICUAvailable},
		{"general", row.GeneralTotal, row.GeneralAvailable},
		{"pediatric", row.PediatricTotal, row.PediatricAvailable},
		{"maternity", row.MaternityTotal, row.MaternityAvailable},
		{"isolation", row.IsolationTotal, row.IsolationAvailable},
	}
	over := map[string]any{}
	for _, pair := range pairs {
		if pair.available > pair.total {
			over[pair.name+"_available"] = fmt.Sprintf("exceeds %s_total (%d > %d)", pair.name, pair.available, pair.total)
		}
	}
	if len(over) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "available beds exceed capacity").WithDetails(over)
	}
	return nil
}

// BloodPatch sets the stock of one blood group.
type BloodPatch struct {
	BloodGroup     string `json:"blood_group" validate:"required"`
	UnitsAvailable *int   `json:"units_available" validate:"required"`
}

// Normalize validates the patch and returns the canonical group.
func (p BloodPatch) Normalize() (enums.BloodGroup, int, error) {
	if p.BloodGroup == "" || p.UnitsAvailable == nil {
		return "", 0, pkgerrors.New(pkgerrors.CodeValidation, "blood_group and units_available are required")
	}
	group, err := enums.ParseBloodGroup(p.BloodGroup)
	if err != nil {
		return "", 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown blood group").
			WithDetails(map[string]any{"blood_group": p.BloodGroup})
	}
	if *p.UnitsAvailable < 0 {
		return "", 0, pkgerrors.New(pkgerrors.CodeValidation, "units_available must be non-negative")
	}
	return group, *p.UnitsAvailable, nil
}
