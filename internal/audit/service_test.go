package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/districthealth/medavail-backend/internal/authz"
	"github.com/districthealth/medavail-backend/pkg/db/models"
	"github.com/districthealth/medavail-backend/pkg/enums"
	pkgerrors "github.com/districthealth/medavail-backend/pkg/errors"
)

type stubRepo struct {
	rows      []Entry
	err       error
	calls     int
	lastLimit int
}

func (s *stubRepo) ListByEntity(_ context.Context, _ uuid.UUID, limit int) ([]Entry, error) {
	s.calls++
	s.lastLimit = limit
	return s.rows, s.err
}

func TestListDeniesBeforeReading(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	hospital := uuid.New()
	_, err = svc.List(context.Background(), nil, hospital)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized))

	other := uuid.New()
	_, err = svc.List(context.Background(), &authz.Principal{Role: enums.RoleHospitalAdmin, HospitalID: &other}, hospital)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeForbidden))
	assert.Zero(t, repo.calls)
}

func TestListMapsRecords(t *testing.T) {
	hospital := uuid.New()
	prev := BedSnapshotOf(&models.BedInventory{ID: uuid.New(), HospitalID: hospital, ICUTotal: 10, ICUAvailable: 4})
	next := BedSnapshotOf(&models.BedInventory{ID: prev.ID, HospitalID: hospital, ICUTotal: 10, ICUAvailable: 2})
	prevRaw, err := EncodeSnapshot(prev)
	require.NoError(t, err)
	nextRaw, err := EncodeSnapshot(next)
	require.NoError(t, err)

	repo := &stubRepo{rows: []Entry{{
		AuditLog: models.AuditLog{
			ID:            uuid.New(),
			EntityType:    enums.EntityTypeHospitalBed,
			EntityID:      hospital,
			ActionType:    enums.ActionTypeUpdate,
			PerformedByID: uuid.New(),
			PreviousValue: prevRaw,
			NewValue:      nextRaw,
			Timestamp:     time.Now(),
		},
		PerformerFullName: "Dr. Kiran",
		PerformerRole:     enums.RoleCMOAdmin,
	}}}
	svc, err := NewService(repo)
	require.NoError(t, err)

	records, err := svc.List(context.Background(), &authz.Principal{Role: enums.RoleCMOAdmin}, hospital)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, MaxRecords, repo.lastLimit)
	assert.Equal(t, "Dr. Kiran", records[0].PerformedBy.FullName)

	gotPrev, gotNext, err := records[0].BedValues()
	require.NoError(t, err)
	assert.Equal(t, 4, gotPrev.ICUAvailable)
	assert.Equal(t, 2, gotNext.ICUAvailable)

	_, _, err = records[0].BloodValues()
	assert.Error(t, err)

	body, err := json.Marshal(records[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), `"performed_by":{"full_name":"Dr. Kiran","role":"CMO_ADMIN"}`)
	assert.Contains(t, string(body), `"icu_available":4`)
}

func TestListWrapsRepositoryFailure(t *testing.T) {
	svc, err := NewService(&stubRepo{err: errors.New("db down")})
	require.NoError(t, err)
	_, err = svc.List(context.Background(), &authz.Principal{Role: enums.RoleSuperAdmin}, uuid.New())
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInternal))
}

func TestSnapshotEmptyPreImage(t *testing.T) {
	raw, err := EncodeSnapshot[BloodSnapshot](nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", raw)

	snap, err := DecodeSnapshot[BloodSnapshot](raw)
	require.NoError(t, err)
	assert.Nil(t, snap)

	rec := FromEntry(Entry{AuditLog: models.AuditLog{EntityType: enums.EntityTypeBloodStock, NewValue: `{"schema_version":1,"blood_group":"O-","units_available":3}`}})
	assert.JSONEq(t, "{}", string(rec.PreviousValue))
	prev, next, err := rec.BloodValues()
	require.NoError(t, err)
	assert.Nil(t, prev)
	assert.Equal(t, enums.BloodGroupONeg, next.BloodGroup)
	assert.Equal(t, SnapshotSchemaVersion, next.SchemaVersion)
}
