package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/districthealth/medavail-backend/internal/authz"
	pkgerrors "github.com/districthealth/medavail-backend/pkg/errors"
)

// MaxRecords caps a single history read.
const MaxRecords = 50

// Service serves audit history to authorized principals.
type Service interface {
	List(ctx context.Context, actor *authz.Principal, entityID uuid.UUID) ([]Record, error)
}

type repository interface {
	ListByEntity(ctx context.Context, entityID uuid.UUID, limit int) ([]Entry, error)
}

type service struct {
	repo repository
}

// NewService builds the audit reader.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("audit repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, actor *authz.Principal, entityID uuid.UUID) ([]Record, error) {
	if err := authz.CanViewAudit(actor, entityID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByEntity(ctx, entityID, MaxRecords)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list audit records")
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, FromEntry(row))
	}
	return records, nil
}
