// Package freshness holds the reporting-age thresholds shared by the public
// dashboard and the district stale flag.
package freshness

import (
	"time"

	"github.com/districthealth/medavail-backend/pkg/config"
	"github.com/districthealth/medavail-backend/pkg/enums"
)

const (
	// DefaultFreshWithin is the age below which a report counts as verified.
	DefaultFreshWithin = 15 * time.Minute
	// DefaultStaleAfter is the age above which a facility is flagged.
	DefaultStaleAfter = 60 * time.Minute
)

// Thresholds pairs the two reporting-age boundaries.
type Thresholds struct {
	FreshWithin time.Duration
	StaleAfter  time.Duration
}

// Default returns the built-in thresholds.
func Default() Thresholds {
	return Thresholds{FreshWithin: DefaultFreshWithin, StaleAfter: DefaultStaleAfter}
}

// FromConfig maps the configured thresholds, falling back to defaults for
// unset values.
func FromConfig(cfg config.FreshnessConfig) Thresholds {
	t := Default()
	if cfg.FreshWithin > 0 {
		t.FreshWithin = cfg.FreshWithin
	}
	if cfg.StaleAfter > 0 {
		t.StaleAfter = cfg.StaleAfter
	}
	return t
}

// IsStale reports whether elapsed strictly exceeds StaleAfter.
func (t Thresholds) IsStale(elapsed time.Duration) bool {
	return elapsed > t.StaleAfter
}

// Classify labels a report age. Exactly FreshWithin is a warning and exactly
// StaleAfter is not yet stale.
func (t Thresholds) Classify(elapsed time.Duration) enums.FreshnessStatus {
	switch {
	case elapsed < t.FreshWithin:
		return enums.FreshnessFresh
	case t.IsStale(elapsed):
		return enums.FreshnessStale
	default:
		return enums.FreshnessWarning
	}
}

// EffectiveLastUpdate picks the inventory timestamp, then the facility
// timestamp, then the zero epoch.
func EffectiveLastUpdate(inventoryUpdatedAt, facilityUpdatedAt *time.Time) time.Time {
	if inventoryUpdatedAt != nil && !inventoryUpdatedAt.IsZero() {
		return *inventoryUpdatedAt
	}
	if facilityUpdatedAt != nil && !facilityUpdatedAt.IsZero() {
		return *facilityUpdatedAt
	}
	return time.Unix(0, 0).UTC()
}
