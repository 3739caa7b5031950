package stats

import (
	"context"

	"gorm.io/gorm"

	"github.com/districthealth/medavail-backend/pkg/db/models"
)

// Repository reads the hospital set the district aggregate is computed over.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs the stats repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountHospitals counts every hospital, active or not.
func (r *Repository) CountHospitals(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Hospital{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// ListActiveWithBeds returns active hospitals with their bed row in
// registration order.
func (r *Repository) ListActiveWithBeds(ctx context.Context) ([]models.Hospital, error) {
	var rows []models.Hospital
	err := r.db.WithContext(ctx).
		Preload("BedInventory").
		Where("is_active = ?", true).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
