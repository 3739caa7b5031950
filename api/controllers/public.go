package controllers

import (
	"net/http"

	"github.com/districthealth/medavail-backend/api/responses"
	"github.com/districthealth/medavail-backend/api/validators"
	"github.com/districthealth/medavail-backend/internal/bloodbanks"
	"github.com/districthealth/medavail-backend/internal/hospitals"
	pkgerrors "github.com/districthealth/medavail-backend/pkg/errors"
	"github.com/districthealth/medavail-backend/pkg/logger"
)

const maxDistrictQueryLen = 100

// PublicHospitals lists active hospitals, optionally narrowed by district or id.
func PublicHospitals(svc hospitals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hospital service unavailable"))
			return
		}

		id, err := validators.ParseQueryUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := hospitals.ListFilter{
			District: validators.ParseQueryString(r, "district", maxDistrictQueryLen),
			ID:       id,
		}

		list, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// PublicBloodBanks lists blood banks with their stock lines.
func PublicBloodBanks(svc bloodbanks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "blood bank service unavailable"))
			return
		}

		list, err := svc.List(r.Context(), validators.ParseQueryString(r, "district", maxDistrictQueryLen))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// PublicRegisterHospital creates a hospital and its empty bed inventory.
func PublicRegisterHospital(svc hospitals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hospital service unavailable"))
			return
		}

		var body hospitals.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}
