package domain

import (
	"context"
	"time"
)

// ObservationRepository defines the persistence sink for derived
// weather/tide records. Inserts are append-only; nothing is updated.
// The domain defines the interface, implementations live in repository/.
type ObservationRepository interface {
	// SaveWeather persists one weather observation.
	SaveWeather(ctx context.Context, obs WeatherObservation) error

	// SaveTide persists one tide observation.
	SaveTide(ctx context.Context, obs TideObservation) error

	// RecentWeather retrieves stored weather observations in a time range.
	RecentWeather(ctx context.Context, from, to time.Time) ([]WeatherObservation, error)

	// RecentTide retrieves stored tide observations in a time range.
	RecentTide(ctx context.Context, from, to time.Time) ([]TideObservation, error)

	// Health checks connectivity to the backing store.
	Health(ctx context.Context) error
}
