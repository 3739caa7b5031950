package hospitals

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/districthealth/medavail-backend/pkg/db/models"
)

// Repository serves the public hospital reads and registration writes.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs the hospitals repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns active hospitals with their bed row, most recently
// reported first. Hospitals that never reported sort last.
func (r *Repository) ListActive(ctx context.Context, filter ListFilter) ([]models.Hospital, error) {
	q := r.db.WithContext(ctx).
		Preload("BedInventory").
		Where("is_active = ?", true)
	if district := strings.TrimSpace(filter.District); district != "" {
		q = q.Where(`LOWER(district) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(district))+"%")
	}
	if filter.ID != nil {
		q = q.Where("id = ?", *filter.ID)
	}

	var rows []models.Hospital
	err := q.
		Order("CASE WHEN last_updated_at IS NULL THEN 1 ELSE 0 END").
		Order("last_updated_at DESC").
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateWithTx inserts the hospital and its bed row.
func (r *Repository) CreateWithTx(tx *gorm.DB, hospital *models.Hospital, beds *models.BedInventory) error {
	if err := tx.Omit("BedInventory").Create(hospital).Error; err != nil {
		return err
	}
	return tx.Create(beds).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
