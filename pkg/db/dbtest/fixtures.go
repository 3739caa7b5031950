package dbtest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/districthealth/medavail-backend/pkg/db/models"
	dbtypes "github.com/districthealth/medavail-backend/pkg/db/types"
	"github.com/districthealth/medavail-backend/pkg/enums"
)

// HospitalOption tweaks a seeded hospital before insert.
type HospitalOption func(*models.Hospital, *models.BedInventory)

// SeedHospital inserts an active hospital and its zeroed bed inventory.
func SeedHospital(t *testing.T, conn *gorm.DB, name, district string, opts ...HospitalOption) (*models.Hospital, *models.BedInventory) {
	t.Helper()
	hospital := &models.Hospital{
		ID:             uuid.New(),
		Name:           name,
		District:       district,
		Latitude:       27.7,
		Longitude:      85.3,
		Address:        name + " Road",
		PhoneEmergency: "102",
		Facilities:     dbtypes.StringList{},
		Photos:         dbtypes.StringList{},
		IsActive:       true,
	}
	beds := &models.BedInventory{
		ID:         uuid.New(),
		HospitalID: hospital.ID,
		UpdatedAt:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(hospital, beds)
	}
	if err := conn.Create(hospital).Error; err != nil {
		t.Fatalf("seed hospital: %v", err)
	}
	if beds.HospitalID != uuid.Nil {
		if err := conn.Create(beds).Error; err != nil {
			t.Fatalf("seed bed inventory: %v", err)
		}
	}
	return hospital, beds
}

// WithoutBeds seeds the hospital with no inventory row.
func WithoutBeds() HospitalOption {
	return func(_ *models.Hospital, b *models.BedInventory) { b.HospitalID = uuid.Nil }
}

// SeedBloodBank inserts a blood bank with no stock rows.
func SeedBloodBank(t *testing.T, conn *gorm.DB, name, district string) *models.BloodBank {
	t.Helper()
	bank := &models.BloodBank{
		ID:        uuid.New(),
		Name:      name,
		District:  district,
		Latitude:  27.7,
		Longitude: 85.3,
		Address:   name + " Road",
		Phone:     "01-4000000",
	}
	if err := conn.Create(bank).Error; err != nil {
		t.Fatalf("seed blood bank: %v", err)
	}
	return bank
}

// SeedUser inserts an active user with the given role and optional binding.
func SeedUser(t *testing.T, conn *gorm.DB, fullName string, role enums.Role, hospitalID, bloodBankID *uuid.UUID) *models.User {
	t.Helper()
	id := uuid.New()
	user := &models.User{
		ID:           id,
		Email:        id.String() + "@medavail.test",
		PasswordHash: "unused",
		FullName:     fullName,
		Role:         role,
		HospitalID:   hospitalID,
		BloodBankID:  bloodBankID,
		IsActive:     true,
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}
