package enums

import "fmt"

// EntityType identifies the kind of inventory an audit record refers to.
type EntityType string

const (
	EntityTypeHospitalBed EntityType = "hospital_bed"
	EntityTypeBloodStock  EntityType = "blood_stock"
)

var validEntityTypes = []EntityType{
	EntityTypeHospitalBed,
	EntityTypeBloodStock,
}

// String implements fmt.Stringer.
func (e EntityType) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EntityType.
func (e EntityType) IsValid() bool {
	for _, candidate := range validEntityTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEntityType converts raw input into an EntityType.
func ParseEntityType(value string) (EntityType, error) {
	for _, candidate := range validEntityTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid entity type %q", value)
}

// ActionType describes the mutation recorded by an audit entry.
type ActionType string

const (
	ActionTypeUpdate ActionType = "UPDATE"
)

// String implements fmt.Stringer.
func (a ActionType) String() string {
	return string(a)
}
