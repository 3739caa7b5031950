package controllers

import (
	"net/http"

	"github.com/districthealth/medavail-backend/api/middleware"
	"github.com/districthealth/medavail-backend/api/responses"
	"github.com/districthealth/medavail-backend/internal/stats"
	pkgerrors "github.com/districthealth/medavail-backend/pkg/errors"
	"github.com/districthealth/medavail-backend/pkg/logger"
)

// DistrictStats returns the district bed totals and stale hospitals to
// oversight roles.
func DistrictStats(svc stats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stats service unavailable"))
			return
		}

		result, err := svc.DistrictStats(r.Context(), middleware.PrincipalFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
