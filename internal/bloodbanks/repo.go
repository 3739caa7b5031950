package bloodbanks

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/districthealth/medavail-backend/pkg/db/models"
)

// Repository serves the public blood bank reads.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs the blood banks repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns banks with their stock rows, optionally narrowed to districts
// containing the given text.
func (r *Repository) List(ctx context.Context, district string) ([]models.BloodBank, error) {
	q := r.db.WithContext(ctx).Preload("Inventory")
	if district = strings.TrimSpace(district); district != "" {
		q = q.Where(`LOWER(district) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(district))+"%")
	}
	var rows []models.BloodBank
	if err := q.Order("name ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
