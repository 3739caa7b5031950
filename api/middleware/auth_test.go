package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/districthealth/medavail-backend/internal/authz"
	"github.com/districthealth/medavail-backend/pkg/auth"
	"github.com/districthealth/medavail-backend/pkg/auth/session"
	"github.com/districthealth/medavail-backend/pkg/config"
	"github.com/districthealth/medavail-backend/pkg/enums"
)

var testJWT = config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(testJWT, stubSessionVerifier{ok: true}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler := Auth(testJWT, stubSessionVerifier{ok: true}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	token := mintTestToken(t, auth.AccessTokenPayload{UserID: uuid.New(), Role: enums.RoleSuperAdmin})
	handler := Auth(testJWT, stubSessionVerifier{ok: false}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSurfacesSessionStoreFailure(t *testing.T) {
	token := mintTestToken(t, auth.AccessTokenPayload{UserID: uuid.New(), Role: enums.RoleSuperAdmin})
	handler := Auth(testJWT, stubSessionVerifier{err: errors.New("redis down")}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestAuthAllowsValidTokenAndSeedsPrincipal(t *testing.T) {
	hospitalID := uuid.New()
	userID := uuid.New()
	token := mintTestToken(t, auth.AccessTokenPayload{
		UserID:     userID,
		Role:       enums.RoleHospitalAdmin,
		HospitalID: &hospitalID,
	})

	var captured *authz.Principal
	handler := Auth(testJWT, stubSessionVerifier{ok: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured == nil {
		t.Fatal("expected principal in context")
	}
	if captured.UserID != userID || captured.Role != enums.RoleHospitalAdmin {
		t.Fatalf("unexpected principal %+v", captured)
	}
	if captured.HospitalID == nil || *captured.HospitalID != hospitalID {
		t.Fatalf("expected hospital binding %s", hospitalID)
	}
	if captured.BloodBankID != nil {
		t.Fatal("expected no blood bank binding")
	}
}

func TestPrincipalFromContextWithoutAuth(t *testing.T) {
	if PrincipalFromContext(context.Background()) != nil {
		t.Fatal("expected nil principal")
	}
}

func mintTestToken(t *testing.T, payload auth.AccessTokenPayload) string {
	t.Helper()
	payload.JTI = session.NewAccessID()
	token, err := auth.MintAccessToken(testJWT, time.Now(), payload)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

type stubSessionVerifier struct {
	ok  bool
	err error
}

func (s stubSessionVerifier) HasSession(ctx context.Context, accessID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.ok, nil
}
