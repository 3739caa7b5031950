package hospitals

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/districthealth/medavail-backend/pkg/db"
	"github.com/districthealth/medavail-backend/pkg/db/dbtest"
	"github.com/districthealth/medavail-backend/pkg/db/models"
	"github.com/districthealth/medavail-backend/pkg/enums"
	"github.com/districthealth/medavail-backend/pkg/freshness"
	"github.com/districthealth/medavail-backend/pkg/logger"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := dbtest.Open(t)
	svc, err := NewService(ServiceParams{
		Repo:       NewRepository(conn),
		DB:         db.NewFromConn(conn),
		Logger:     logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Thresholds: freshness.Default(),
		Now:        func() time.Time { return now },
	})
	require.NoError(t, err)
	return svc, conn
}

func reportedAt(at time.Time) dbtest.HospitalOption {
	return func(h *models.Hospital, b *models.BedInventory) {
		h.LastUpdatedAt = &at
		b.UpdatedAt = at
	}
}

func TestListOrdersByLastReportAndClassifies(t *testing.T) {
	svc, conn := newTestService(t)
	dbtest.SeedHospital(t, conn, "Old", "Kathmandu", reportedAt(now.Add(-2*time.Hour)))
	dbtest.SeedHospital(t, conn, "Fresh", "Kathmandu", reportedAt(now.Add(-5*time.Minute)))
	dbtest.SeedHospital(t, conn, "Warm", "Lalitpur", reportedAt(now.Add(-30*time.Minute)))
	dbtest.SeedHospital(t, conn, "Never", "Kathmandu", dbtest.WithoutBeds())
	dbtest.SeedHospital(t, conn, "Closed", "Kathmandu", reportedAt(now), func(h *models.Hospital, _ *models.BedInventory) {
		h.IsActive = false
	})

	out, err := svc.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, out, 4)

	names := []string{out[0].Name, out[1].Name, out[2].Name, out[3].Name}
	assert.Equal(t, []string{"Fresh", "Warm", "Old", "Never"}, names)
	assert.Equal(t, enums.FreshnessFresh, out[0].FreshnessStatus)
	assert.Equal(t, enums.FreshnessWarning, out[1].FreshnessStatus)
	assert.Equal(t, enums.FreshnessStale, out[2].FreshnessStatus)
	assert.Equal(t, enums.FreshnessStale, out[3].FreshnessStatus)
	assert.Nil(t, out[3].Beds)
	require.NotNil(t, out[0].Beds)
}

func TestListFiltersByDistrictSubstringAndID(t *testing.T) {
	svc, conn := newTestService(t)
	ktm, _ := dbtest.SeedHospital(t, conn, "Bir", "Kathmandu", reportedAt(now))
	dbtest.SeedHospital(t, conn, "Patan", "Lalitpur", reportedAt(now))
	dbtest.SeedHospital(t, conn, "Odd", "100%_district", reportedAt(now))

	out, err := svc.List(context.Background(), ListFilter{District: " mandu "})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Bir", out[0].Name)

	out, err = svc.List(context.Background(), ListFilter{District: "%"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Odd", out[0].Name)

	out, err = svc.List(context.Background(), ListFilter{ID: &ktm.ID})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, ktm.ID, out[0].ID)
}

func TestRegisterCreatesHospitalWithZeroedBeds(t *testing.T) {
	svc, conn := newTestService(t)
	website := "https://example.org"

	dto, err := svc.Register(context.Background(), RegisterRequest{
		Name:           "  Community Clinic ",
		District:       "Bhaktapur",
		Latitude:       27.67,
		Longitude:      85.43,
		Address:        "Main Road",
		PhoneEmergency: "102",
		Website:        &website,
		Facilities:     []string{"ICU", " ", "Pharmacy"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Community Clinic", dto.Name)
	assert.Equal(t, []string{"ICU", "Pharmacy"}, dto.Facilities)
	assert.Equal(t, []string{}, dto.Photos)
	require.NotNil(t, dto.Beds)
	assert.Equal(t, BedsDTO{UpdatedAt: now}, *dto.Beds)
	assert.Equal(t, enums.FreshnessFresh, dto.FreshnessStatus)

	var stored models.Hospital
	require.NoError(t, conn.Preload("BedInventory").First(&stored, "id = ?", dto.ID).Error)
	assert.True(t, stored.IsActive)
	require.NotNil(t, stored.BedInventory)
	assert.Zero(t, stored.BedInventory.ICUTotal)

	var audits int64
	require.NoError(t, conn.Model(&models.AuditLog{}).Count(&audits).Error)
	assert.Zero(t, audits)
}
