package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/districthealth/medavail-backend/internal/audit"
	"github.com/districthealth/medavail-backend/internal/authz"
	"github.com/districthealth/medavail-backend/pkg/db"
	"github.com/districthealth/medavail-backend/pkg/db/models"
	"github.com/districthealth/medavail-backend/pkg/enums"
	pkgerrors "github.com/districthealth/medavail-backend/pkg/errors"
	"github.com/districthealth/medavail-backend/pkg/logger"
	"github.com/districthealth/medavail-backend/pkg/metrics"
)

const updateFailedMessage = "update failed"

// Service applies inventory updates. Each call is one atomic unit: the row,
// the parent timestamp and the audit record commit together or not at all.
type Service interface {
	UpdateBeds(ctx context.Context, actor *authz.Principal, hospitalID uuid.UUID, patch BedPatch) (*models.BedInventory, error)
	UpdateBloodStock(ctx context.Context, actor *authz.Principal, bankID uuid.UUID, patch BloodPatch) (*models.BloodInventory, error)
}

type repository interface {
	FindBedsWithTx(tx *gorm.DB, hospitalID uuid.UUID) (*models.BedInventory, error)
	SaveBedsWithTx(tx *gorm.DB, row *models.BedInventory) error
	FindStockWithTx(tx *gorm.DB, bankID uuid.UUID, group enums.BloodGroup) (*models.BloodInventory, error)
	CreateStockWithTx(tx *gorm.DB, row *models.BloodInventory) error
	SaveStockWithTx(tx *gorm.DB, row *models.BloodInventory) error
	TouchHospitalWithTx(tx *gorm.DB, hospitalID uuid.UUID, at time.Time) error
	TouchBloodBankWithTx(tx *gorm.DB, bankID uuid.UUID, at time.Time) error
}

type auditAppender interface {
	AppendWithTx(tx *gorm.DB, entry *models.AuditLog) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	Repo            repository
	Audit           auditAppender
	DB              txRunner
	Logger          *logger.Logger
	Metrics         *metrics.InventoryMetrics
	EnforceCapacity bool
	Now             func() time.Time
}

type service struct {
	repo            repository
	audit           auditAppender
	db              txRunner
	logg            *logger.Logger
	metrics         *metrics.InventoryMetrics
	enforceCapacity bool
	now             func() time.Time
}

// NewService constructs the inventory update service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if params.Audit == nil {
		return nil, fmt.Errorf("audit repository required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:            params.Repo,
		audit:           params.Audit,
		db:              params.DB,
		logg:            params.Logger,
		metrics:         params.Metrics,
		enforceCapacity: params.EnforceCapacity,
		now:             now,
	}, nil
}

func (s *service) UpdateBeds(ctx context.Context, actor *authz.Principal, hospitalID uuid.UUID, patch BedPatch) (*models.BedInventory, error) {
	entityType := enums.EntityTypeHospitalBed
	ctx = s.logg.WithEntity(ctx, entityType.String(), hospitalID.String())

	if err := authz.Authorize(actor, entityType, hospitalID); err != nil {
		return nil, s.reject(entityType, err)
	}
	if err := patch.Validate(); err != nil {
		return nil, s.reject(entityType, err)
	}

	var result *models.BedInventory
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		row, err := s.repo.FindBedsWithTx(tx, hospitalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "bed inventory not found")
			}
			return fmt.Errorf("load bed inventory: %w", err)
		}
		previous := audit.BedSnapshotOf(row)

		now := s.now().UTC()
		patch.Apply(row)
		if s.enforceCapacity {
			if err := checkCapacity(row); err != nil {
				return err
			}
		}
		row.UpdatedAt = now
		actorID := actor.UserID
		row.UpdatedByID = &actorID

		if err := s.repo.SaveBedsWithTx(tx, row); err != nil {
			return fmt.Errorf("save bed inventory: %w", err)
		}
		if err := s.repo.TouchHospitalWithTx(tx, hospitalID, now); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "hospital not found")
			}
			return fmt.Errorf("touch hospital: %w", err)
		}

		prevRaw, err := audit.EncodeSnapshot(previous)
		if err != nil {
			return err
		}
		nextRaw, err := audit.EncodeSnapshot(audit.BedSnapshotOf(row))
		if err != nil {
			return err
		}
		if err := s.appendAudit(tx, entityType, hospitalID, actor.UserID, prevRaw, nextRaw, now); err != nil {
			return err
		}
		result = row
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, entityType, err)
	}

	s.succeed(ctx, entityType)
	return result, nil
}

func (s *service) UpdateBloodStock(ctx context.Context, actor *authz.Principal, bankID uuid.UUID, patch BloodPatch) (*models.BloodInventory, error) {
	entityType := enums.EntityTypeBloodStock
	ctx = s.logg.WithEntity(ctx, entityType.String(), bankID.String())

	if err := authz.Authorize(actor, entityType, bankID); err != nil {
		return nil, s.reject(entityType, err)
	}
	group, units, err := patch.Normalize()
	if err != nil {
		return nil, s.reject(entityType, err)
	}
	ctx = s.logg.WithField(ctx, "blood_group", group.String())

	var result *models.BloodInventory
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		row, err := s.repo.FindStockWithTx(tx, bankID, group)
		exists := true
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("load blood stock: %w", err)
			}
			exists = false
			row = &models.BloodInventory{BloodBankID: bankID, BloodGroup: group}
		}

		var previous *audit.BloodSnapshot
		if exists {
			previous = audit.BloodSnapshotOf(row)
		}

		now := s.now().UTC()
		if err := s.repo.TouchBloodBankWithTx(tx, bankID, now); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "blood bank not found")
			}
			return fmt.Errorf("touch blood bank: %w", err)
		}
		row.UnitsAvailable = units
		row.UpdatedAt = now
		actorID := actor.UserID
		row.UpdatedByID = &actorID

		if exists {
			err = s.repo.SaveStockWithTx(tx, row)
		} else {
			err = s.repo.CreateStockWithTx(tx, row)
		}
		if err != nil {
			if !exists && db.IsUniqueViolation(err) {
				return pkgerrors.Wrap(pkgerrors.CodeConcurrentWrite, err, "blood stock for this group was created by another update, retry")
			}
			return fmt.Errorf("write blood stock: %w", err)
		}

		prevRaw, err := audit.EncodeSnapshot(previous)
		if err != nil {
			return err
		}
		nextRaw, err := audit.EncodeSnapshot(audit.BloodSnapshotOf(row))
		if err != nil {
			return err
		}
		if err := s.appendAudit(tx, entityType, bankID, actor.UserID, prevRaw, nextRaw, now); err != nil {
			return err
		}
		result = row
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, entityType, err)
	}

	s.succeed(ctx, entityType)
	return result, nil
}

func (s *service) appendAudit(tx *gorm.DB, entityType enums.EntityType, entityID, actorID uuid.UUID, prev, next string, at time.Time) error {
	entry := &models.AuditLog{
		ID:            uuid.New(),
		EntityType:    entityType,
		EntityID:      entityID,
		ActionType:    enums.ActionTypeUpdate,
		PerformedByID: actorID,
		PreviousValue: prev,
		NewValue:      next,
		Timestamp:     at,
	}
	if err := s.audit.AppendWithTx(tx, entry); err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	return nil
}

func (s *service) reject(entityType enums.EntityType, err error) error {
	s.metrics.IncUpdate(entityType.String(), metrics.ResultRejected)
	return err
}

// fail passes typed errors through and hides storage detail behind a
// generic message, logging the cause.
func (s *service) fail(ctx context.Context, entityType enums.EntityType, err error) error {
	if typed := pkgerrors.As(err); typed != nil {
		return s.reject(entityType, typed)
	}
	s.metrics.IncUpdate(entityType.String(), metrics.ResultFailed)
	ctx = s.logg.WithFields(ctx, pkgerrors.Dump(err).Fields())
	s.logg.Error(ctx, "inventory update rolled back", err)
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, updateFailedMessage)
}

func (s *service) succeed(ctx context.Context, entityType enums.EntityType) {
	s.metrics.IncUpdate(entityType.String(), metrics.ResultSuccess)
	s.logg.Info(ctx, "inventory updated")
}
