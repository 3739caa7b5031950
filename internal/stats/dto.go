package stats

// DistrictBeds holds the aggregated categories as flat totals. Pediatric and
// isolation beds are tracked per hospital only.
type DistrictBeds struct {
	ICUTotal           int `json:"icu_total"`
	ICUAvailable       int `json:"icu_available"`
	GeneralTotal       int `json:"general_total"`
	GeneralAvailable   int `json:"general_available"`
	MaternityTotal     int `json:"maternity_total"`
	MaternityAvailable int `json:"maternity_available"`
}

// add folds one hospital's inventory into the totals.
func (d *DistrictBeds) add(icuTotal, icuAvailable, generalTotal, generalAvailable, maternityTotal, maternityAvailable int) {
	d.ICUTotal += icuTotal
	d.ICUAvailable += icuAvailable
	d.GeneralTotal += generalTotal
	d.GeneralAvailable += generalAvailable
	d.MaternityTotal += maternityTotal
	d.MaternityAvailable += maternityAvailable
}

// DistrictStats is the oversight summary for the district.
type DistrictStats struct {
	TotalHospitals   int64        `json:"total_hospitals"`
	ActiveHospitals  int          `json:"active_hospitals"`
	Beds             DistrictBeds `json:"beds"`
	FlaggedHospitals []string     `json:"flagged_hospitals"`
}
