package domain

import "strconv"

// Location represents a resolved coastal location. Immutable after resolution.
type Location struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Country   string  `json:"country"`
	Timezone  string  `json:"timezone"`
}

// Coordinates returns the "lat,lon" form used as the location key on
// observations and alerts.
func (l Location) Coordinates() string {
	return strconv.FormatFloat(l.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(l.Longitude, 'f', -1, 64)
}
