package hospitals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/districthealth/medavail-backend/pkg/db/models"
	dbtypes "github.com/districthealth/medavail-backend/pkg/db/types"
	pkgerrors "github.com/districthealth/medavail-backend/pkg/errors"
	"github.com/districthealth/medavail-backend/pkg/freshness"
	"github.com/districthealth/medavail-backend/pkg/logger"
)

// Service exposes the public hospital directory.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]HospitalDTO, error)
	Register(ctx context.Context, req RegisterRequest) (*HospitalDTO, error)
}

type repository interface {
	ListActive(ctx context.Context, filter ListFilter) ([]models.Hospital, error)
	CreateWithTx(tx *gorm.DB, hospital *models.Hospital, beds *models.BedInventory) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	Repo       repository
	DB         txRunner
	Logger     *logger.Logger
	Thresholds freshness.Thresholds
	Now        func() time.Time
}

type service struct {
	repo       repository
	db         txRunner
	logg       *logger.Logger
	thresholds freshness.Thresholds
	now        func() time.Time
}

// NewService constructs the hospitals service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("hospitals repository required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	thresholds := params.Thresholds
	if thresholds.FreshWithin <= 0 || thresholds.StaleAfter <= 0 {
		thresholds = freshness.Default()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:       params.Repo,
		db:         params.DB,
		logg:       params.Logger,
		thresholds: thresholds,
		now:        now,
	}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]HospitalDTO, error) {
	rows, err := s.repo.ListActive(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list hospitals")
	}
	now := s.now()
	out := make([]HospitalDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row, s.thresholds, now))
	}
	return out, nil
}

// Register creates an active hospital with zeroed bed inventory.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*HospitalDTO, error) {
	now := s.now().UTC()
	hospital := &models.Hospital{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(req.Name),
		District:       strings.TrimSpace(req.District),
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Address:        strings.TrimSpace(req.Address),
		PhoneEmergency: strings.TrimSpace(req.PhoneEmergency),
		Email:          req.Email,
		Website:        req.Website,
		Type:           req.Type,
		Description:    req.Description,
		Image:          req.Image,
		Facilities:     dbtypes.StringList(cleanList(req.Facilities)),
		Photos:         dbtypes.StringList(cleanList(req.Photos)),
		IsActive:       true,
		CreatedAt:      now,
	}
	beds := &models.BedInventory{
		ID:         uuid.New(),
		HospitalID: hospital.ID,
		UpdatedAt:  now,
	}

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.CreateWithTx(tx, hospital, beds)
	})
	if err != nil {
		ctx = s.logg.WithFields(ctx, pkgerrors.Dump(err).Fields())
		s.logg.Error(ctx, "hospital registration failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "registration failed")
	}

	ctx = s.logg.WithEntity(ctx, "hospital", hospital.ID.String())
	s.logg.Info(ctx, "hospital registered")

	hospital.BedInventory = beds
	dto := FromModel(*hospital, s.thresholds, now)
	return &dto, nil
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
