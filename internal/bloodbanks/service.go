package bloodbanks

import (
	"context"
	"fmt"

	"github.com/districthealth/medavail-backend/pkg/db/models"
	pkgerrors "github.com/districthealth/medavail-backend/pkg/errors"
)

// Service exposes the public blood bank directory.
type Service interface {
	List(ctx context.Context, district string) ([]BloodBankDTO, error)
}

type repository interface {
	List(ctx context.Context, district string) ([]models.BloodBank, error)
}

type service struct {
	repo repository
}

// NewService constructs the blood banks service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("blood banks repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, district string) ([]BloodBankDTO, error) {
	rows, err := s.repo.List(ctx, district)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list blood banks")
	}
	out := make([]BloodBankDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out, nil
}
