package enums

import (
	"fmt"
	"strings"
)

// BloodGroup is one of the eight ABO/Rh groups tracked per blood bank.
type BloodGroup string

const (
	BloodGroupAPos  BloodGroup = "A+"
	BloodGroupANeg  BloodGroup = "A-"
	BloodGroupBPos  BloodGroup = "B+"
	BloodGroupBNeg  BloodGroup = "B-"
	BloodGroupABPos BloodGroup = "AB+"
	BloodGroupABNeg BloodGroup = "AB-"
	BloodGroupOPos  BloodGroup = "O+"
	BloodGroupONeg  BloodGroup = "O-"
)

// unicodeMinus is U+2212, which some clients send in place of '-'.
const unicodeMinus = "\u2212"

var validBloodGroups = []BloodGroup{
	BloodGroupAPos,
	BloodGroupANeg,
	BloodGroupBPos,
	BloodGroupBNeg,
	BloodGroupABPos,
	BloodGroupABNeg,
	BloodGroupOPos,
	BloodGroupONeg,
}

// BloodGroups returns every known group in display order.
func BloodGroups() []BloodGroup {
	out := make([]BloodGroup, len(validBloodGroups))
	copy(out, validBloodGroups)
	return out
}

// String implements fmt.Stringer.
func (b BloodGroup) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BloodGroup.
func (b BloodGroup) IsValid() bool {
	for _, candidate := range validBloodGroups {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBloodGroup normalizes raw input (case, surrounding space, U+2212)
// and converts it into a BloodGroup.
func ParseBloodGroup(value string) (BloodGroup, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, unicodeMinus, "-")
	for _, candidate := range validBloodGroups {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid blood group %q", value)
}
