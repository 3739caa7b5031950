package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/districthealth/medavail-backend/pkg/auth"
	"github.com/districthealth/medavail-backend/pkg/config"
	"github.com/districthealth/medavail-backend/pkg/db/models"
	"github.com/districthealth/medavail-backend/pkg/enums"
	pkgerrors "github.com/districthealth/medavail-backend/pkg/errors"
	"github.com/districthealth/medavail-backend/pkg/security"
)

var testJWT = config.JWTConfig{
	Secret:            "secret",
	Issuer:            "medavail",
	ExpirationMinutes: 30,
}

func TestServiceLoginHospitalAdminCarriesBinding(t *testing.T) {
	password := "ward-secret"
	hospitalID := uuid.New()
	user := &models.User{
		ID:           uuid.New(),
		Email:        "ward@example.org",
		PasswordHash: mustHashPassword(t, password),
		FullName:     "Ward Admin",
		Role:         enums.RoleHospitalAdmin,
		HospitalID:   &hospitalID,
		IsActive:     true,
	}

	svc, sessions, err := buildTestService(user, nil)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    " WARD@example.org ",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWT, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != enums.RoleHospitalAdmin {
		t.Fatalf("expected hospital admin role claim, got %s", claims.Role)
	}
	if claims.HospitalID == nil || *claims.HospitalID != hospitalID {
		t.Fatalf("expected hospital binding %s, got %v", hospitalID, claims.HospitalID)
	}
	if claims.ID == "" || sessions.lastAccessID != claims.ID {
		t.Fatalf("expected refresh session keyed by jti %q, got %q", claims.ID, sessions.lastAccessID)
	}
	if resp.RefreshToken != "refresh-token" {
		t.Fatalf("expected refresh token to be set")
	}
	if resp.User == nil || resp.User.LastLoginAt == nil {
		t.Fatalf("expected last login to be recorded")
	}
}

func TestServiceLoginRejectsBadCredentials(t *testing.T) {
	password := "correct"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "cmo@example.org",
		PasswordHash: mustHashPassword(t, password),
		FullName:     "District CMO",
		Role:         enums.RoleCMOAdmin,
		IsActive:     true,
	}

	cases := map[string]struct {
		repoErr  error
		mutate   func(*models.User)
		req      LoginRequest
		wantCode pkgerrors.Code
	}{
		"wrong password": {req: LoginRequest{Email: user.Email, Password: "nope"}, wantCode: pkgerrors.CodeUnauthorized},
		"blank email":    {req: LoginRequest{Email: "  ", Password: password}, wantCode: pkgerrors.CodeUnauthorized},
		"unknown user":   {repoErr: gorm.ErrRecordNotFound, req: LoginRequest{Email: "x@example.org", Password: password}, wantCode: pkgerrors.CodeUnauthorized},
		"lookup failure": {repoErr: errors.New("db down"), req: LoginRequest{Email: user.Email, Password: password}, wantCode: pkgerrors.CodeInternal},
		"inactive": {
			mutate:   func(u *models.User) { u.IsActive = false },
			req:      LoginRequest{Email: user.Email, Password: password},
			wantCode: pkgerrors.CodeUnauthorized,
		},
		"unknown role": {
			mutate:   func(u *models.User) { u.Role = "VIEWER" },
			req:      LoginRequest{Email: user.Email, Password: password},
			wantCode: pkgerrors.CodeUnauthorized,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			candidate := *user
			if tc.mutate != nil {
				tc.mutate(&candidate)
			}
			svc, _, err := buildTestService(&candidate, tc.repoErr)
			if err != nil {
				t.Fatalf("build service: %v", err)
			}
			_, err = svc.Login(context.Background(), tc.req)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != tc.wantCode {
				t.Fatalf("expected %s, got %v", tc.wantCode, err)
			}
		})
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(ServiceParams{SessionManager: &stubSessionManager{}}); err == nil {
		t.Fatal("expected missing user repository to fail")
	}
	if _, err := NewService(ServiceParams{UserRepo: stubUserRepo{}}); err == nil {
		t.Fatal("expected missing session manager to fail")
	}
}

func buildTestService(user *models.User, repoErr error) (Service, *stubSessionManager, error) {
	userRepo := stubUserRepo{user: user, err: repoErr}
	sessionMgr := &stubSessionManager{refreshToken: "refresh-token"}
	svc, err := NewService(ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionMgr,
		JWTConfig:      testJWT,
		Now:            func() time.Time { return time.Now() },
	})
	return svc, sessionMgr, err
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

type stubUserRepo struct {
	user     *models.User
	err      error
	rehashed *[]string
}

func (s stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if s.user != nil && s.user.ID == id {
		s.user.LastLoginAt = &at
	}
	return nil
}

func (s stubUserRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	if s.rehashed != nil {
		*s.rehashed = append(*s.rehashed, hash)
	}
	return nil
}

type stubSessionManager struct {
	refreshToken string
	lastAccessID string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.lastAccessID = accessID
	return s.refreshToken, nil
}

func TestServiceLoginRehashesOutdatedCosts(t *testing.T) {
	password := "stock-keeper"
	bankID := uuid.New()
	user := &models.User{
		ID:           uuid.New(),
		Email:        "bank@example.org",
		PasswordHash: mustHashPassword(t, password),
		FullName:     "Bank Admin",
		Role:         enums.RoleBloodBankAdmin,
		BloodBankID:  &bankID,
		IsActive:     true,
	}
	var rehashed []string
	current := config.PasswordConfig{ArgonTime: 2}

	svc, err := NewService(ServiceParams{
		UserRepo:       stubUserRepo{user: user, rehashed: &rehashed},
		SessionManager: &stubSessionManager{refreshToken: "refresh-token"},
		JWTConfig:      testJWT,
		PasswordConfig: current,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if len(rehashed) != 1 {
		t.Fatalf("expected one rehash, got %d", len(rehashed))
	}
	if security.NeedsRehash(rehashed[0], current) {
		t.Fatal("expected stored hash to match current costs")
	}
	if ok, err := security.VerifyPassword(password, rehashed[0]); err != nil || !ok {
		t.Fatalf("rehashed credential does not verify, ok=%v err=%v", ok, err)
	}

	rehashed = nil
	if _, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password}); err != nil {
		t.Fatalf("second login: %v", err)
	}
	if len(rehashed) != 0 {
		t.Fatalf("expected no rehash once current, got %d", len(rehashed))
	}
}
