package model

// AvailabilityCountries is the fixed set of countries every availability
// request covers. Display order follows this list, not arrival order.
var AvailabilityCountries = []string{"USA", "China", "Russia", "India", "UK", "Dubai", "Brazil"}

// CareerAvailability scores the new-graduate job market for one country.
type CareerAvailability struct {
	Country           string  `json:"country"`
	AvailabilityScore float64 `json:"availabilityScore"` // 1 (low) to 10 (high)
	Summary           string  `json:"summary"`
}

// OrderAvailability re-orders provider output to the fixed country list.
// Entries for unknown countries are dropped; missing countries are skipped.
func OrderAvailability(in []CareerAvailability) []CareerAvailability {
	byCountry := make(map[string]CareerAvailability, len(in))
	for _, a := range in {
		byCountry[a.Country] = a
	}
	out := make([]CareerAvailability, 0, len(AvailabilityCountries))
	for _, c := range AvailabilityCountries {
		if a, ok := byCountry[c]; ok {
			out = append(out, a)
		}
	}
	return out
}
