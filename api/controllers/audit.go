package controllers

import (
	"net/http"

	"github.com/districthealth/medavail-backend/api/middleware"
	"github.com/districthealth/medavail-backend/api/responses"
	"github.com/districthealth/medavail-backend/api/validators"
	"github.com/districthealth/medavail-backend/internal/audit"
	pkgerrors "github.com/districthealth/medavail-backend/pkg/errors"
	"github.com/districthealth/medavail-backend/pkg/logger"
)

// AuditList returns the most recent changes recorded for an entity.
func AuditList(svc audit.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "audit service unavailable"))
			return
		}

		entityID, err := validators.ParseUUIDParam(r, "entityId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.List(r.Context(), middleware.PrincipalFromContext(r.Context()), entityID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, records)
	}
}
