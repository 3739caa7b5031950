package inventory

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/districthealth/medavail-backend/internal/audit"
	"github.com/districthealth/medavail-backend/internal/authz"
	"github.com/districthealth/medavail-backend/pkg/db/dbtest"
	"github.com/districthealth/medavail-backend/pkg/db/models"
	"github.com/districthealth/medavail-backend/pkg/enums"
	pkgerrors "github.com/districthealth/medavail-backend/pkg/errors"
	"github.com/districthealth/medavail-backend/pkg/logger"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	conn    *gorm.DB
	svc     Service
	auditDB *audit.Repository
}

type failingAudit struct{}

func (failingAudit) AppendWithTx(*gorm.DB, *models.AuditLog) error {
	return errors.New("disk full")
}

func newHarness(t *testing.T, appender auditAppender) *harness {
	t.Helper()
	client, conn := dbtest.Client(t)
	auditRepo := audit.NewRepository(conn)
	if appender == nil {
		appender = auditRepo
	}
	svc, err := NewService(ServiceParams{
		Repo:            NewRepository(),
		Audit:           appender,
		DB:              client,
		Logger:          logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		EnforceCapacity: true,
		Now:             func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return &harness{conn: conn, svc: svc, auditDB: auditRepo}
}

func intPtr(v int) *int { return &v }

func countRows(t *testing.T, conn *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.Model(model).Count(&n).Error)
	return n
}

func auditTrail(t *testing.T, h *harness, entityID uuid.UUID) []audit.Record {
	t.Helper()
	rows, err := h.auditDB.ListByEntity(context.Background(), entityID, audit.MaxRecords)
	require.NoError(t, err)
	records := make([]audit.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, audit.FromEntry(row))
	}
	return records
}

func TestUpdateBedsSuperAdminScenario(t *testing.T) {
	h := newHarness(t, nil)
	hospital, _ := dbtest.SeedHospital(t, h.conn, "Teaching Hospital", "Kathmandu", func(_ *models.Hospital, b *models.BedInventory) {
		b.ICUTotal, b.ICUAvailable = 10, 5
	})
	admin := dbtest.SeedUser(t, h.conn, "District Super", enums.RoleSuperAdmin, nil, nil)
	actor := &authz.Principal{UserID: admin.ID, Role: enums.RoleSuperAdmin}

	row, err := h.svc.UpdateBeds(context.Background(), actor, hospital.ID, BedPatch{ICUAvailable: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, row.ICUAvailable)
	assert.Equal(t, 10, row.ICUTotal)
	require.NotNil(t, row.UpdatedByID)
	assert.Equal(t, admin.ID, *row.UpdatedByID)

	trail := auditTrail(t, h, hospital.ID)
	require.Len(t, trail, 1)
	assert.Equal(t, enums.ActionTypeUpdate, trail[0].ActionType)
	assert.Equal(t, "District Super", trail[0].PerformedBy.FullName)
	prev, next, err := trail[0].BedValues()
	require.NoError(t, err)
	assert.Equal(t, 5, prev.ICUAvailable)
	assert.Equal(t, 3, next.ICUAvailable)
	encoded, err := audit.EncodeSnapshot(audit.BedSnapshotOf(row))
	require.NoError(t, err)
	assert.JSONEq(t, encoded, string(trail[0].NewValue))

	var reloaded models.Hospital
	require.NoError(t, h.conn.First(&reloaded, "id = ?", hospital.ID).Error)
	require.NotNil(t, reloaded.LastUpdatedAt)
	assert.True(t, reloaded.LastUpdatedAt.Equal(fixedNow))
}

func TestUpdateBedsTwiceChainsSnapshots(t *testing.T) {
	h := newHarness(t, nil)
	hospital, _ := dbtest.SeedHospital(t, h.conn, "Patan Hospital", "Lalitpur", func(_ *models.Hospital, b *models.BedInventory) {
		b.GeneralTotal, b.GeneralAvailable = 40, 12
	})
	user := dbtest.SeedUser(t, h.conn, "Ward Admin", enums.RoleHospitalAdmin, &hospital.ID, nil)
	actor := &authz.Principal{UserID: user.ID, Role: enums.RoleHospitalAdmin, HospitalID: &hospital.ID}
	patch := BedPatch{GeneralAvailable: intPtr(9)}

	_, err := h.svc.UpdateBeds(context.Background(), actor, hospital.ID, patch)
	require.NoError(t, err)
	_, err = h.svc.UpdateBeds(context.Background(), actor, hospital.ID, patch)
	require.NoError(t, err)

	trail := auditTrail(t, h, hospital.ID)
	require.Len(t, trail, 2)
	assert.JSONEq(t, string(trail[0].NewValue), string(trail[1].NewValue))
	assert.JSONEq(t, string(trail[1].NewValue), string(trail[0].PreviousValue))
}

func TestUpdateBedsForeignHospitalAdminIsForbiddenWithoutWrites(t *testing.T) {
	h := newHarness(t, nil)
	target, _ := dbtest.SeedHospital(t, h.conn, "Target", "Kathmandu")
	own, _ := dbtest.SeedHospital(t, h.conn, "Own", "Kathmandu")
	user := dbtest.SeedUser(t, h.conn, "Other Admin", enums.RoleHospitalAdmin, &own.ID, nil)
	actor := &authz.Principal{UserID: user.ID, Role: enums.RoleHospitalAdmin, HospitalID: &own.ID}

	beforeAudit := countRows(t, h.conn, &models.AuditLog{})
	_, err := h.svc.UpdateBeds(context.Background(), actor, target.ID, BedPatch{ICUTotal: intPtr(1)})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeForbidden))
	assert.Equal(t, beforeAudit, countRows(t, h.conn, &models.AuditLog{}))

	var row models.BedInventory
	require.NoError(t, h.conn.First(&row, "hospital_id = ?", target.ID).Error)
	assert.Zero(t, row.ICUTotal)
}

func TestUpdateWithoutPrincipalIsUnauthenticated(t *testing.T) {
	h := newHarness(t, nil)
	hospital, _ := dbtest.SeedHospital(t, h.conn, "Any", "Kathmandu")
	bank := dbtest.SeedBloodBank(t, h.conn, "Any Bank", "Kathmandu")

	_, err := h.svc.UpdateBeds(context.Background(), nil, hospital.ID, BedPatch{ICUTotal: intPtr(1)})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized))
	assert.False(t, pkgerrors.HasCode(err, pkgerrors.CodeForbidden))

	_, err = h.svc.UpdateBloodStock(context.Background(), nil, bank.ID, BloodPatch{BloodGroup: "A+", UnitsAvailable: intPtr(1)})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized))
	assert.Zero(t, countRows(t, h.conn, &models.AuditLog{}))
}

func TestUpdateBedsValidation(t *testing.T) {
	h := newHarness(t, nil)
	hospital, _ := dbtest.SeedHospital(t, h.conn, "Valid", "Kathmandu", func(_ *models.Hospital, b *models.BedInventory) {
		b.MaternityTotal, b.MaternityAvailable = 5, 2
	})
	actor := &authz.Principal{UserID: uuid.New(), Role: enums.RoleCMOAdmin}

	cases := map[string]BedPatch{
		"empty":          {},
		"negative":       {ICUTotal: intPtr(-1)},
		"over capacity":  {MaternityAvailable: intPtr(6)},
		"shrink below":   {MaternityTotal: intPtr(1)},
		"zero total set": {IsolationAvailable: intPtr(1)},
	}
	for name, patch := range cases {
		_, err := h.svc.UpdateBeds(context.Background(), actor, hospital.ID, patch)
		assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "%s: got %v", name, err)
	}
	assert.Zero(t, countRows(t, h.conn, &models.AuditLog{}))

	var row models.BedInventory
	require.NoError(t, h.conn.First(&row, "hospital_id = ?", hospital.ID).Error)
	assert.Equal(t, 2, row.MaternityAvailable)
	assert.Equal(t, 5, row.MaternityTotal)
}

func TestUpdateBedsCapacityCheckCanBeDisabled(t *testing.T) {
	client, conn := dbtest.Client(t)
	svc, err := NewService(ServiceParams{
		Repo:   NewRepository(),
		Audit:  audit.NewRepository(conn),
		DB:     client,
		Logger: logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Now:    func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	hospital, _ := dbtest.SeedHospital(t, conn, "Loose", "Bhaktapur")

	row, err := svc.UpdateBeds(context.Background(), &authz.Principal{UserID: uuid.New(), Role: enums.RoleSuperAdmin}, hospital.ID, BedPatch{ICUAvailable: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, row.ICUAvailable)

	_, err = svc.UpdateBeds(context.Background(), &authz.Principal{UserID: uuid.New(), Role: enums.RoleSuperAdmin}, hospital.ID, BedPatch{ICUAvailable: intPtr(-4)})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestUpdateBedsMissingInventoryIsNotFound(t *testing.T) {
	h := newHarness(t, nil)
	hospital, _ := dbtest.SeedHospital(t, h.conn, "No Beds", "Kathmandu", dbtest.WithoutBeds())

	_, err := h.svc.UpdateBeds(context.Background(), &authz.Principal{UserID: uuid.New(), Role: enums.RoleSuperAdmin}, hospital.ID, BedPatch{ICUTotal: intPtr(2)})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))

	_, err = h.svc.UpdateBeds(context.Background(), &authz.Principal{UserID: uuid.New(), Role: enums.RoleSuperAdmin}, uuid.New(), BedPatch{ICUTotal: intPtr(2)})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestUpdatePersistenceFailureRollsBackEverything(t *testing.T) {
	h := newHarness(t, failingAudit{})
	hospital, _ := dbtest.SeedHospital(t, h.conn, "Rollback", "Kathmandu", func(_ *models.Hospital, b *models.BedInventory) {
		b.ICUTotal, b.ICUAvailable = 8, 8
	})
	bank := dbtest.SeedBloodBank(t, h.conn, "Rollback Bank", "Kathmandu")
	actor := &authz.Principal{UserID: uuid.New(), Role: enums.RoleSuperAdmin}

	_, err := h.svc.UpdateBeds(context.Background(), actor, hospital.ID, BedPatch{ICUAvailable: intPtr(1)})
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInternal))
	assert.Equal(t, "update failed", pkgerrors.As(err).Message())

	var row models.BedInventory
	require.NoError(t, h.conn.First(&row, "hospital_id = ?", hospital.ID).Error)
	assert.Equal(t, 8, row.ICUAvailable)
	var reloaded models.Hospital
	require.NoError(t, h.conn.First(&reloaded, "id = ?", hospital.ID).Error)
	assert.Nil(t, reloaded.LastUpdatedAt)

	_, err = h.svc.UpdateBloodStock(context.Background(), actor, bank.ID, BloodPatch{BloodGroup: "B+", UnitsAvailable: intPtr(2)})
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInternal))
	assert.Zero(t, countRows(t, h.conn, &models.BloodInventory{}))
}

func TestUpdateBloodStockCreatesThenUpdates(t *testing.T) {
	h := newHarness(t, nil)
	bank := dbtest.SeedBloodBank(t, h.conn, "Red Cross", "Kathmandu")
	user := dbtest.SeedUser(t, h.conn, "Bank Admin", enums.RoleBloodBankAdmin, nil, &bank.ID)
	actor := &authz.Principal{UserID: user.ID, Role: enums.RoleBloodBankAdmin, BloodBankID: &bank.ID}

	created, err := h.svc.UpdateBloodStock(context.Background(), actor, bank.ID, BloodPatch{BloodGroup: "O-", UnitsAvailable: intPtr(7)})
	require.NoError(t, err)
	assert.Equal(t, 7, created.UnitsAvailable)
	assert.Equal(t, enums.BloodGroupONeg, created.BloodGroup)

	trail := auditTrail(t, h, bank.ID)
	require.Len(t, trail, 1)
	assert.JSONEq(t, "{}", string(trail[0].PreviousValue))
	prev, next, err := trail[0].BloodValues()
	require.NoError(t, err)
	assert.Nil(t, prev)
	assert.Equal(t, 7, next.UnitsAvailable)

	updated, err := h.svc.UpdateBloodStock(context.Background(), actor, bank.ID, BloodPatch{BloodGroup: "o\u2212", UnitsAvailable: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.EqualValues(t, 1, countRows(t, h.conn, &models.BloodInventory{}))

	trail = auditTrail(t, h, bank.ID)
	require.Len(t, trail, 2)
	prev, next, err = trail[0].BloodValues()
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, 7, prev.UnitsAvailable)
	assert.Equal(t, 4, next.UnitsAvailable)

	var reloaded models.BloodBank
	require.NoError(t, h.conn.First(&reloaded, "id = ?", bank.ID).Error)
	require.NotNil(t, reloaded.LastUpdatedAt)
}

func TestUpdateBloodStockValidationAndScope(t *testing.T) {
	h := newHarness(t, nil)
	bank := dbtest.SeedBloodBank(t, h.conn, "Scoped", "Kathmandu")
	other := uuid.New()
	owner := &authz.Principal{UserID: uuid.New(), Role: enums.RoleBloodBankAdmin, BloodBankID: &bank.ID}

	cases := map[string]BloodPatch{
		"missing group": {UnitsAvailable: intPtr(1)},
		"missing units": {BloodGroup: "A+"},
		"unknown group": {BloodGroup: "C+", UnitsAvailable: intPtr(1)},
		"negative":      {BloodGroup: "A+", UnitsAvailable: intPtr(-2)},
	}
	for name, patch := range cases {
		_, err := h.svc.UpdateBloodStock(context.Background(), owner, bank.ID, patch)
		assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "%s: got %v", name, err)
	}

	foreign := &authz.Principal{UserID: uuid.New(), Role: enums.RoleBloodBankAdmin, BloodBankID: &other}
	_, err := h.svc.UpdateBloodStock(context.Background(), foreign, bank.ID, BloodPatch{BloodGroup: "A+", UnitsAvailable: intPtr(1)})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeForbidden))

	hospitalAdmin := &authz.Principal{UserID: uuid.New(), Role: enums.RoleHospitalAdmin, HospitalID: &bank.ID}
	_, err = h.svc.UpdateBloodStock(context.Background(), hospitalAdmin, bank.ID, BloodPatch{BloodGroup: "A+", UnitsAvailable: intPtr(1)})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeForbidden))

	_, err = h.svc.UpdateBloodStock(context.Background(), &authz.Principal{UserID: uuid.New(), Role: enums.RoleCMOAdmin}, uuid.New(), BloodPatch{BloodGroup: "A+", UnitsAvailable: intPtr(1)})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))

	assert.Zero(t, countRows(t, h.conn, &models.BloodInventory{}))
	assert.Zero(t, countRows(t, h.conn, &models.AuditLog{}))
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	assert.Error(t, err)
}

// lostRaceRepo never sees an existing stock row, as if another writer
// inserted it between the read and the insert.
type lostRaceRepo struct {
	*Repository
}

func (lostRaceRepo) FindStockWithTx(*gorm.DB, uuid.UUID, enums.BloodGroup) (*models.BloodInventory, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestUpdateBloodStockConcurrentCreateIsConflict(t *testing.T) {
	client, conn := dbtest.Client(t)
	auditRepo := audit.NewRepository(conn)
	svc, err := NewService(ServiceParams{
		Repo:   lostRaceRepo{Repository: NewRepository()},
		Audit:  auditRepo,
		DB:     client,
		Logger: logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Now:    func() time.Time { return fixedNow },
	})
	require.NoError(t, err)

	bank := dbtest.SeedBloodBank(t, conn, "Red Cross", "Kathmandu")
	user := dbtest.SeedUser(t, conn, "Bank Admin", enums.RoleBloodBankAdmin, nil, &bank.ID)
	actor := &authz.Principal{UserID: user.ID, Role: enums.RoleBloodBankAdmin, BloodBankID: &bank.ID}

	_, err = svc.UpdateBloodStock(context.Background(), actor, bank.ID, BloodPatch{BloodGroup: "A+", UnitsAvailable: intPtr(3)})
	require.NoError(t, err)

	_, err = svc.UpdateBloodStock(context.Background(), actor, bank.ID, BloodPatch{BloodGroup: "A+", UnitsAvailable: intPtr(9)})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConcurrentWrite), "got %v", err)
	assert.True(t, pkgerrors.IsRetryable(err))

	var rows []models.BloodInventory
	require.NoError(t, conn.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].UnitsAvailable)
	assert.Len(t, auditTrail(t, &harness{auditDB: auditRepo}, bank.ID), 1)
}
