// Package location resolves free-form location input into canonical
// coastal locations. Resolution never fails: unknown inputs derive a
// deterministic pseudo-location from a hash of the input string.
package location

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/coastwatch/backend/internal/domain"
)

type catalogEntry struct {
	key string
	loc domain.Location
}

// catalog is the canonical coastal city list. Order is significant:
// ambiguous substring matches resolve to the first entry, so this stays a
// slice rather than a map.
var catalog = []catalogEntry{
	{"mumbai", domain.Location{ID: "mumbai", Name: "Mumbai, India", Latitude: 19.0760, Longitude: 72.8777, Country: "India", Timezone: "IST"}},
	{"miami", domain.Location{ID: "miami", Name: "Miami, USA", Latitude: 25.7617, Longitude: -80.1918, Country: "USA", Timezone: "EST"}},
	{"sydney", domain.Location{ID: "sydney", Name: "Sydney, Australia", Latitude: -33.8688, Longitude: 151.2093, Country: "Australia", Timezone: "AEST"}},
	{"tokyo", domain.Location{ID: "tokyo", Name: "Tokyo, Japan", Latitude: 35.6762, Longitude: 139.6503, Country: "Japan", Timezone: "JST"}},
	{"london", domain.Location{ID: "london", Name: "London, UK", Latitude: 51.5074, Longitude: -0.1278, Country: "UK", Timezone: "GMT"}},
	{"rio", domain.Location{ID: "rio", Name: "Rio de Janeiro, Brazil", Latitude: -22.9068, Longitude: -43.1729, Country: "Brazil", Timezone: "BRT"}},
	{"cape_town", domain.Location{ID: "cape_town", Name: "Cape Town, South Africa", Latitude: -33.9249, Longitude: 18.4241, Country: "South Africa", Timezone: "SAST"}},
	{"singapore", domain.Location{ID: "singapore", Name: "Singapore", Latitude: 1.3521, Longitude: 103.8198, Country: "Singapore", Timezone: "SGT"}},
	{"dubai", domain.Location{ID: "dubai", Name: "Dubai, UAE", Latitude: 25.2048, Longitude: 55.2708, Country: "UAE", Timezone: "GST"}},
	{"vancouver", domain.Location{ID: "vancouver", Name: "Vancouver, Canada", Latitude: 49.2827, Longitude: -123.1207, Country: "Canada", Timezone: "PST"}},
}

// Catalog returns the canonical location list in fixed order.
func Catalog() []domain.Location {
	out := make([]domain.Location, len(catalog))
	for i, e := range catalog {
		out[i] = e.loc
	}
	return out
}

// Resolver maps location input strings to Locations. Stateless and
// deterministic; safe for concurrent use.
type Resolver struct{}

// NewResolver creates a location resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve maps input to a Location. Catalog lookup runs before any
// fallback: known cities never take the coordinate or hash paths.
func (r *Resolver) Resolve(input string) domain.Location {
	raw := strings.TrimSpace(input)
	norm := normalize(raw)

	for _, e := range catalog {
		if e.key == norm {
			return e.loc
		}
	}

	// Substring pass: "mumbai port" or "CapeTown" still hit the catalog.
	for _, e := range catalog {
		stripped := strings.ReplaceAll(e.key, "_", "")
		if strings.Contains(norm, e.key) ||
			strings.Contains(strings.ReplaceAll(norm, "_", ""), stripped) {
			return e.loc
		}
	}

	if strings.Contains(raw, ",") {
		if loc, ok := parseCoordinates(raw); ok {
			return loc
		}
	}

	return deriveLocation(raw)
}

func normalize(input string) string {
	s := strings.ToLower(input)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}

func parseCoordinates(input string) (domain.Location, bool) {
	parts := strings.SplitN(input, ",", 2)
	if len(parts) != 2 {
		return domain.Location{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Location{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Location{}, false
	}
	return domain.Location{
		Name:      fmt.Sprintf("Custom Location (%.4f, %.4f)", lat, lon),
		Latitude:  lat,
		Longitude: lon,
		Country:   "Custom",
		Timezone:  "UTC",
	}, true
}

// deriveLocation produces a stable pseudo-location for unknown input.
// SHA-256 over the lowercased UTF-8 bytes keeps the derivation identical
// across runs and platforms.
func deriveLocation(input string) domain.Location {
	sum := sha256.Sum256([]byte(strings.ToLower(input)))
	latBits := binary.BigEndian.Uint64(sum[0:8])
	lonBits := binary.BigEndian.Uint64(sum[8:16])

	lat := -90 + float64(latBits%180)
	lon := -180 + float64(lonBits%360)

	// Bias away from poles and the antimeridian.
	if lat > 60 || lat < -60 {
		lat *= 0.6
	}
	if lon > 150 || lon < -150 {
		lon *= 0.8
	}

	return domain.Location{
		Name:      strings.TrimSpace(input),
		Latitude:  lat,
		Longitude: lon,
		Country:   "Unknown",
		Timezone:  timezoneLabel(lon),
	}
}

func timezoneLabel(lon float64) string {
	offset := int(lon / 15) // truncation toward zero
	if offset == 0 {
		return "UTC"
	}
	return fmt.Sprintf("UTC%+d", offset)
}
