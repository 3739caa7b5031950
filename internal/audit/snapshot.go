package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/districthealth/medavail-backend/pkg/db/models"
	"github.com/districthealth/medavail-backend/pkg/enums"
)

// SnapshotSchemaVersion is stamped into every encoded snapshot.
const SnapshotSchemaVersion = 1

const emptySnapshot = "{}"

// BedSnapshot is the persisted image of a bed inventory row.
type BedSnapshot struct {
	SchemaVersion      int        `json:"schema_version"`
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
	UpdatedByID        *uuid.UUID `json:"updated_by_id"`
}

// BloodSnapshot is the persisted image of a blood inventory row.
type BloodSnapshot struct {
	SchemaVersion  int              `json:"schema_version"`
	ID             uuid.UUID        `json:"id"`
	BloodBankID    uuid.UUID        `json:"blood_bank_id"`
	BloodGroup     enums.BloodGroup `json:"blood_group"`
	UnitsAvailable int              `json:"units_available"`
	UpdatedAt      time.Time        `json:"updated_at"`
	UpdatedByID    *uuid.UUID       `json:"updated_by_id"`
}

// BedSnapshotOf copies a bed row. A nil row yields nil.
func BedSnapshotOf(row *models.BedInventory) *BedSnapshot {
	if row == nil {
		return nil
	}
	return &BedSnapshot{
		SchemaVersion:      SnapshotSchemaVersion,
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
		UpdatedAt:          row.UpdatedAt.UTC(),
		UpdatedByID:        copyID(row.UpdatedByID),
	}
}

// BloodSnapshotOf copies a blood row. A nil row yields nil.
func BloodSnapshotOf(row *models.BloodInventory) *BloodSnapshot {
	if row == nil {
		return nil
	}
	return &BloodSnapshot{
		SchemaVersion:  SnapshotSchemaVersion,
		ID:             row.ID,
		BloodBankID:    row.BloodBankID,
		BloodGroup:     row.BloodGroup,
		UnitsAvailable: row.UnitsAvailable,
		UpdatedAt:      row.UpdatedAt.UTC(),
		UpdatedByID:    copyID(row.UpdatedByID),
	}
}

// EncodeSnapshot serializes a snapshot; nil encodes as the empty object.
func EncodeSnapshot[T BedSnapshot | BloodSnapshot](snap *T) (string, error) {
	if snap == nil {
		return emptySnapshot, nil
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(raw), nil
}

// DecodeSnapshot parses a stored payload; the empty object decodes to nil.
func DecodeSnapshot[T BedSnapshot | BloodSnapshot](raw string) (*T, error) {
	if isEmptyPayload(raw) {
		return nil, nil
	}
	var snap T
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

func isEmptyPayload(raw string) bool {
	switch raw {
	case "", emptySnapshot, "null":
		return true
	}
	return false
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
