package domain

import "strings"

// Coordinates is a lat/lng pair, zero-valued when unknown.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is a structured address derived from free-text input.
type Location struct {
	Address     string      `json:"address"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	Coordinates Coordinates `json:"coordinates"`
}

// ParseLocation splits free text on commas: the full input becomes the
// address, the first segment the city and the second the state.
func ParseLocation(raw string) Location {
	raw = strings.TrimSpace(raw)
	loc := Location{Address: raw, City: raw}
	parts := strings.Split(raw, ",")
	if len(parts) > 0 {
		loc.City = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		loc.State = strings.TrimSpace(parts[1])
	}
	return loc
}
