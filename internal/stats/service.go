package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/districthealth/medavail-backend/internal/authz"
	"github.com/districthealth/medavail-backend/pkg/db/models"
	pkgerrors "github.com/districthealth/medavail-backend/pkg/errors"
	"github.com/districthealth/medavail-backend/pkg/freshness"
)

// Service computes district-wide bed totals and the stale reporting flag.
type Service interface {
	DistrictStats(ctx context.Context, actor *authz.Principal) (*DistrictStats, error)
	// StaleHospitals returns the flagged names without an actor check and is
	// meant for background sweeps only.
	StaleHospitals(ctx context.Context) ([]string, error)
}

type repository interface {
	CountHospitals(ctx context.Context) (int64, error)
	ListActiveWithBeds(ctx context.Context) ([]models.Hospital, error)
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	Repo       repository
	Thresholds freshness.Thresholds
	Now        func() time.Time
}

type service struct {
	repo       repository
	thresholds freshness.Thresholds
	now        func() time.Time
}

// NewService constructs the stats service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("stats repository required")
	}
	thresholds := params.Thresholds
	if thresholds.StaleAfter <= 0 {
		thresholds = freshness.Default()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, thresholds: thresholds, now: now}, nil
}

func (s *service) DistrictStats(ctx context.Context, actor *authz.Principal) (*DistrictStats, error) {
	if err := authz.RequireOversight(actor); err != nil {
		return nil, err
	}

	total, err := s.repo.CountHospitals(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count hospitals")
	}
	hospitals, err := s.repo.ListActiveWithBeds(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list hospitals")
	}

	out := &DistrictStats{
		TotalHospitals:   total,
		ActiveHospitals:  len(hospitals),
		FlaggedHospitals: s.flagged(hospitals),
	}
	for _, h := range hospitals {
		if h.BedInventory == nil {
			continue
		}
		b := h.BedInventory
		out.Beds.add(b.ICUTotal, b.ICUAvailable, b.GeneralTotal, b.GeneralAvailable, b.MaternityTotal, b.MaternityAvailable)
	}
	return out, nil
}

func (s *service) StaleHospitals(ctx context.Context) ([]string, error) {
	hospitals, err := s.repo.ListActiveWithBeds(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list hospitals")
	}
	return s.flagged(hospitals), nil
}

// flagged keeps input order.
func (s *service) flagged(hospitals []models.Hospital) []string {
	now := s.now()
	names := make([]string, 0)
	for _, h := range hospitals {
		var invUpdated *time.Time
		if h.BedInventory != nil {
			invUpdated = &h.BedInventory.UpdatedAt
		}
		last := freshness.EffectiveLastUpdate(invUpdated, h.LastUpdatedAt)
		if s.thresholds.IsStale(now.Sub(last)) {
			names = append(names, h.Name)
		}
	}
	return names
}
