package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/districthealth/medavail-backend/pkg/db/models"
	"github.com/districthealth/medavail-backend/pkg/enums"
)

// Entry is an audit row joined with the performing user's current identity.
type Entry struct {
	models.AuditLog
	PerformerFullName string     `gorm:"column:performer_full_name"`
	PerformerRole     enums.Role `gorm:"column:performer_role"`
}

// Repository persists and reads audit rows. Rows are never updated or deleted.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an audit repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AppendWithTx inserts a record inside the caller's transaction.
func (r *Repository) AppendWithTx(tx *gorm.DB, entry *models.AuditLog) error {
	if entry == nil {
		return fmt.Errorf("audit entry is required")
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return tx.Create(entry).Error
}

// ListByEntity returns up to limit records for the entity, newest first.
func (r *Repository) ListByEntity(ctx context.Context, entityID uuid.UUID, limit int) ([]Entry, error) {
	var rows []Entry
	err := r.db.WithContext(ctx).
		Table("audit_logs").
		Select("audit_logs.*, users.full_name AS performer_full_name, users.role AS performer_role").
		Joins("LEFT JOIN users ON users.id = audit_logs.performed_by_id").
		Where("audit_logs.entity_id = ?", entityID).
		Order("audit_logs.timestamp DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
