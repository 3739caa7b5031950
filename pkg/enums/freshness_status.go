package enums

// FreshnessStatus labels how recently a hospital reported its inventory.
type FreshnessStatus string

const (
	FreshnessFresh   FreshnessStatus = "fresh"
	FreshnessWarning FreshnessStatus = "warning"
	FreshnessStale   FreshnessStatus = "stale"
)

// String implements fmt.Stringer.
func (f FreshnessStatus) String() string {
	return string(f)
}
