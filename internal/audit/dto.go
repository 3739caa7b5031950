package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/districthealth/medavail-backend/pkg/enums"
)

// Performer identifies who made a change, resolved at read time.
type Performer struct {
	FullName string     `json:"full_name"`
	Role     enums.Role `json:"role"`
}

// Record is the read model returned to clients.
type Record struct {
	ID            uuid.UUID        `json:"id"`
	EntityType    enums.EntityType `json:"entity_type"`
	EntityID      uuid.UUID        `json:"entity_id"`
	ActionType    enums.ActionType `json:"action_type"`
	PerformedByID uuid.UUID        `json:"performed_by_id"`
	PerformedBy   Performer        `json:"performed_by"`
	PreviousValue json.RawMessage  `json:"previous_value"`
	NewValue      json.RawMessage  `json:"new_value"`
	Timestamp     time.Time        `json:"timestamp"`
}

// FromEntry maps a joined row into a Record.
func FromEntry(e Entry) Record {
	return Record{
		ID:            e.ID,
		EntityType:    e.EntityType,
		EntityID:      e.EntityID,
		ActionType:    e.ActionType,
		PerformedByID: e.PerformedByID,
		PerformedBy: Performer{
			FullName: e.PerformerFullName,
			Role:     e.PerformerRole,
		},
		PreviousValue: rawPayload(e.PreviousValue),
		NewValue:      rawPayload(e.NewValue),
		Timestamp:     e.Timestamp.UTC(),
	}
}

// BedValues decodes both payloads of a hospital_bed record.
func (r Record) BedValues() (prev, next *BedSnapshot, err error) {
	if r.EntityType != enums.EntityTypeHospitalBed {
		return nil, nil, fmt.Errorf("record %s is %s, not %s", r.ID, r.EntityType, enums.EntityTypeHospitalBed)
	}
	if prev, err = DecodeSnapshot[BedSnapshot](string(r.PreviousValue)); err != nil {
		return nil, nil, err
	}
	if next, err = DecodeSnapshot[BedSnapshot](string(r.NewValue)); err != nil {
		return nil, nil, err
	}
	return prev, next, nil
}

// BloodValues decodes both payloads of a blood_stock record.
func (r Record) BloodValues() (prev, next *BloodSnapshot, err error) {
	if r.EntityType != enums.EntityTypeBloodStock {
		return nil, nil, fmt.Errorf("record %s is %s, not %s", r.ID, r.EntityType, enums.EntityTypeBloodStock)
	}
	if prev, err = DecodeSnapshot[BloodSnapshot](string(r.PreviousValue)); err != nil {
		return nil, nil, err
	}
	if next, err = DecodeSnapshot[BloodSnapshot](string(r.NewValue)); err != nil {
		return nil, nil, err
	}
	return prev, next, nil
}

func rawPayload(s string) json.RawMessage {
	if s == "" {
		return json.RawMessage(emptySnapshot)
	}
	return json.RawMessage(s)
}
