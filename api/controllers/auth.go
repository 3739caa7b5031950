package controllers

import (
	"net/http"

	"github.com/districthealth/medavail-backend/api/responses"
	"github.com/districthealth/medavail-backend/api/validators"
	"github.com/districthealth/medavail-backend/internal/auth"
	pkgerrors "github.com/districthealth/medavail-backend/pkg/errors"
	"github.com/districthealth/medavail-backend/pkg/logger"
)

// TokenHeader mirrors the issued access token for clients that read headers.
const TokenHeader = "X-MedAvail-Token"

// AuthLogin wires the login endpoint into the HTTP layer.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(TokenHeader, result.AccessToken)
		responses.WriteSuccess(w, result)
	}
}
