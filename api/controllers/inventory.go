package controllers

import (
	"net/http"

	"github.com/districthealth/medavail-backend/api/middleware"
	"github.com/districthealth/medavail-backend/api/responses"
	"github.com/districthealth/medavail-backend/api/validators"
	"github.com/districthealth/medavail-backend/internal/authz"
	"github.com/districthealth/medavail-backend/internal/inventory"
	"github.com/districthealth/medavail-backend/pkg/enums"
	pkgerrors "github.com/districthealth/medavail-backend/pkg/errors"
	"github.com/districthealth/medavail-backend/pkg/logger"
)

// UpdateBeds applies a bed patch to the hospital named in the path.
func UpdateBeds(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		principal := middleware.PrincipalFromContext(r.Context())
		if principal == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		hospitalID, err := validators.ParseUUIDParam(r, "hospitalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		// scope is settled before the body is read
		if err := authz.Authorize(principal, enums.EntityTypeHospitalBed, hospitalID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var patch inventory.BedPatch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.UpdateBeds(r.Context(), principal, hospitalID, patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, inventory.BedsFromModel(row))
	}
}

// UpdateBloodStock sets one blood group's units at the bank named in the path.
func UpdateBloodStock(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		principal := middleware.PrincipalFromContext(r.Context())
		if principal == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		bankID, err := validators.ParseUUIDParam(r, "bloodBankId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := authz.Authorize(principal, enums.EntityTypeBloodStock, bankID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var patch inventory.BloodPatch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.UpdateBloodStock(r.Context(), principal, bankID, patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, inventory.StockFromModel(row))
	}
}
