package inventory

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/districthealth/medavail-backend/pkg/db/models"
	"github.com/districthealth/medavail-backend/pkg/enums"
)

// Repository holds the inventory row operations used by the atomic unit.
// Every method runs on the caller's transaction.
type Repository struct{}

// NewRepository constructs the inventory repository.
func NewRepository() *Repository {
	return &Repository{}
}

// FindBedsWithTx loads the bed row of a hospital.
func (r *Repository) FindBedsWithTx(tx *gorm.DB, hospitalID uuid.UUID) (*models.BedInventory, error) {
	var row models.BedInventory
	if err := tx.Where("hospital_id = ?", hospitalID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// SaveBedsWithTx writes every column of an existing bed row.
func (r *Repository) SaveBedsWithTx(tx *gorm.DB, row *models.BedInventory) error {
	return tx.Save(row).Error
}

// FindStockWithTx loads the stock row for one group at a bank.
func (r *Repository) FindStockWithTx(tx *gorm.DB, bankID uuid.UUID, group enums.BloodGroup) (*models.BloodInventory, error) {
	var row models.BloodInventory
	if err := tx.Where("blood_bank_id = ? AND blood_group = ?", bankID, group).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// CreateStockWithTx inserts a new stock row.
func (r *Repository) CreateStockWithTx(tx *gorm.DB, row *models.BloodInventory) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return tx.Create(row).Error
}

// SaveStockWithTx writes every column of an existing stock row.
func (r *Repository) SaveStockWithTx(tx *gorm.DB, row *models.BloodInventory) error {
	return tx.Save(row).Error
}

// TouchHospitalWithTx stamps last_updated_at, failing with
// gorm.ErrRecordNotFound when the hospital does not exist.
func (r *Repository) TouchHospitalWithTx(tx *gorm.DB, hospitalID uuid.UUID, at time.Time) error {
	return touch(tx, &models.Hospital{}, hospitalID, at)
}

// TouchBloodBankWithTx stamps last_updated_at on a blood bank.
func (r *Repository) TouchBloodBankWithTx(tx *gorm.DB, bankID uuid.UUID, at time.Time) error {
	return touch(tx, &models.BloodBank{}, bankID, at)
}

func touch(tx *gorm.DB, model any, id uuid.UUID, at time.Time) error {
	res := tx.Model(model).Where("id = ?", id).UpdateColumn("last_updated_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
