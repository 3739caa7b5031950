package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/districthealth/medavail-backend/pkg/enums"
)

// AuditLog is an append-only record of a single inventory mutation.
type AuditLog struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	EntityType    enums.EntityType `gorm:"column:entity_type;not null"`
	EntityID      uuid.UUID        `gorm:"column:entity_id;type:uuid;not null;index"`
	ActionType    enums.ActionType `gorm:"column:action_type;not null"`
	PerformedByID uuid.UUID        `gorm:"column:performed_by_id;type:uuid;not null"`
	PreviousValue string           `gorm:"column:previous_value;not null"`
	NewValue      string           `gorm:"column:new_value;not null"`
	Timestamp     time.Time        `gorm:"column:timestamp;not null;index"`
}

func (AuditLog) TableName() string { return "audit_logs" }
