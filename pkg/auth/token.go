package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/districthealth/medavail-backend/pkg/config"
	"github.com/districthealth/medavail-backend/pkg/enums"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// MintAccessToken issues a signed JWT for the provided payload using the configured TTL.
func MintAccessToken(cfg config.JWTConfig, now time.Time, payload AccessTokenPayload) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("jwt secret is required")
	}
	if cfg.Issuer == "" {
		return "", fmt.Errorf("jwt issuer is required")
	}
	if cfg.ExpirationMinutes <= 0 {
		return "", fmt.Errorf("jwt expiration minutes must be positive")
	}
	if !payload.Role.IsValid() {
		return "", fmt.Errorf("invalid role %q", payload.Role)
	}
	if err := validateScope(payload); err != nil {
		return "", err
	}

	issuedAt := jwt.NewNumericDate(now)
	expiry := jwt.NewNumericDate(now.Add(time.Duration(cfg.ExpirationMinutes) * time.Minute))

	jti := strings.TrimSpace(payload.JTI)
	if jti == "" {
		jti = uuid.NewString()
	}

	claims := AccessTokenClaims{
		UserID:      payload.UserID,
		Role:        payload.Role,
		HospitalID:  payload.HospitalID,
		BloodBankID: payload.BloodBankID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  issuedAt,
			ExpiresAt: expiry,
			Subject:   payload.UserID.String(),
			ID:        jti,
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

func validateScope(payload AccessTokenPayload) error {
	switch payload.Role {
	case enums.RoleHospitalAdmin:
		if payload.HospitalID == nil || payload.BloodBankID != nil {
			return fmt.Errorf("%s requires exactly a hospital binding", payload.Role)
		}
	case enums.RoleBloodBankAdmin:
		if payload.BloodBankID == nil || payload.HospitalID != nil {
			return fmt.Errorf("%s requires exactly a blood bank binding", payload.Role)
		}
	default:
		if payload.HospitalID != nil || payload.BloodBankID != nil {
			return fmt.Errorf("%s must not carry an entity binding", payload.Role)
		}
	}
	return nil
}

// ParseAccessToken validates signature, issuer and expiry and returns the
// typed claims. Tokens whose role and bindings disagree are rejected.
func ParseAccessToken(cfg config.JWTConfig, tokenString string) (*AccessTokenClaims, error) {
	return parseClaims(cfg, tokenString, jwt.WithIssuer(cfg.Issuer))
}

// ParseAccessTokenAllowExpired skips exp/nbf so refresh and logout can read
// the jti of an expired token. Signature and issuer are still enforced.
func ParseAccessTokenAllowExpired(cfg config.JWTConfig, tokenString string) (*AccessTokenClaims, error) {
	claims, err := parseClaims(cfg, tokenString, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, err
	}
	if claims.Issuer != cfg.Issuer {
		return nil, fmt.Errorf("%w: issuer %q", jwt.ErrTokenInvalidIssuer, claims.Issuer)
	}
	return claims, nil
}

func parseClaims(cfg config.JWTConfig, tokenString string, opts ...jwt.ParserOption) (*AccessTokenClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	opts = append(opts, jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}))

	claims := &AccessTokenClaims{}
	if _, err := jwt.NewParser(opts...).ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(cfg.Secret), nil
	}); err != nil {
		return nil, err
	}
	if !claims.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", jwt.ErrTokenInvalidClaims, claims.Role)
	}
	if err := validateScope(claims.payload()); err != nil {
		return nil, fmt.Errorf("%w: %v", jwt.ErrTokenInvalidClaims, err)
	}
	return claims, nil
}
