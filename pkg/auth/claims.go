package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/districthealth/medavail-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID      uuid.UUID
	Role        enums.Role
	HospitalID  *uuid.UUID
	BloodBankID *uuid.UUID
	JTI         string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID      uuid.UUID  `json:"user_id"`
	Role        enums.Role `json:"role"`
	HospitalID  *uuid.UUID `json:"hospital_id,omitempty"`
	BloodBankID *uuid.UUID `json:"blood_bank_id,omitempty"`
	jwt.RegisteredClaims
}

func (c *AccessTokenClaims) payload() AccessTokenPayload {
	return AccessTokenPayload{
		UserID:      c.UserID,
		Role:        c.Role,
		HospitalID:  c.HospitalID,
		BloodBankID: c.BloodBankID,
		JTI:         c.ID,
	}
}
