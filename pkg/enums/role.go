package enums

import "fmt"

// Role is the administrator role carried by every authenticated principal.
type Role string

const (
	RoleSuperAdmin     Role = "SUPER_ADMIN"
	RoleCMOAdmin       Role = "CMO_ADMIN"
	RoleHospitalAdmin  Role = "HOSPITAL_ADMIN"
	RoleBloodBankAdmin Role = "BLOOD_BANK_ADMIN"
)

var validRoles = []Role{
	RoleSuperAdmin,
	RoleCMOAdmin,
	RoleHospitalAdmin,
	RoleBloodBankAdmin,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsOversight reports whether the role has district-wide reach.
func (r Role) IsOversight() bool {
	return r == RoleSuperAdmin || r == RoleCMOAdmin
}

// RequiresScope reports whether the role must be bound to exactly one entity.
func (r Role) RequiresScope() bool {
	return r == RoleHospitalAdmin || r == RoleBloodBankAdmin
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
