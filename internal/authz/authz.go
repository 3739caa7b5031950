// Package authz decides whether a principal may act on an inventory entity.
// Every decision is a pure function of the principal and the target.
package authz

import (
	"github.com/google/uuid"

	"github.com/districthealth/medavail-backend/pkg/enums"
	pkgerrors "github.com/districthealth/medavail-backend/pkg/errors"
)

// Principal is the authenticated actor passed explicitly to every
// core operation.
type Principal struct {
	UserID      uuid.UUID
	Role        enums.Role
	HospitalID  *uuid.UUID
	BloodBankID *uuid.UUID
}

func errUnauthenticated() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
}

func errForbidden() error {
	return pkgerrors.New(pkgerrors.CodeForbidden, "not permitted for this entity")
}

// Authorize allows oversight roles on any entity, hospital admins on their
// own hospital's beds and blood bank admins on their own bank's stock.
func Authorize(p *Principal, entityType enums.EntityType, entityID uuid.UUID) error {
	if p == nil {
		return errUnauthenticated()
	}
	switch {
	case p.Role.IsOversight():
		return nil
	case p.Role == enums.RoleHospitalAdmin && entityType == enums.EntityTypeHospitalBed:
		if matches(p.HospitalID, entityID) {
			return nil
		}
	case p.Role == enums.RoleBloodBankAdmin && entityType == enums.EntityTypeBloodStock:
		if matches(p.BloodBankID, entityID) {
			return nil
		}
	}
	return errForbidden()
}

// CanViewAudit applies the same scoping to audit history, where the entity
// type is implied by the principal's binding.
func CanViewAudit(p *Principal, entityID uuid.UUID) error {
	if p == nil {
		return errUnauthenticated()
	}
	switch {
	case p.Role.IsOversight():
		return nil
	case p.Role == enums.RoleHospitalAdmin && matches(p.HospitalID, entityID):
		return nil
	case p.Role == enums.RoleBloodBankAdmin && matches(p.BloodBankID, entityID):
		return nil
	}
	return errForbidden()
}

// RequireOversight admits only district-wide roles.
func RequireOversight(p *Principal) error {
	if p == nil {
		return errUnauthenticated()
	}
	if !p.Role.IsOversight() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "district oversight role required")
	}
	return nil
}

func matches(bound *uuid.UUID, target uuid.UUID) bool {
	return bound != nil && *bound != uuid.Nil && *bound == target
}
