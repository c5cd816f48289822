package postgres

import (
	"context"
	"sync"
	"time"

	"github.com/coastwatch/backend/internal/domain"
)

// MockRepository implements domain.ObservationRepository in memory for
// testing/demo mode (no DATABASE_URL configured).
type MockRepository struct {
	mu      sync.Mutex
	weather []domain.WeatherObservation
	tides   []domain.TideObservation
}

// NewMockRepository creates a new in-memory repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// SaveWeather appends the observation in memory
func (r *MockRepository) SaveWeather(ctx context.Context, obs domain.WeatherObservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.weather = append(r.weather, obs)
	return nil
}

// SaveTide appends the observation in memory
func (r *MockRepository) SaveTide(ctx context.Context, obs domain.TideObservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tides = append(r.tides, obs)
	return nil
}

// RecentWeather returns stored weather observations within the range
func (r *MockRepository) RecentWeather(ctx context.Context, from, to time.Time) ([]domain.WeatherObservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var results []domain.WeatherObservation
	for _, w := range r.weather {
		if !w.Timestamp.Before(from) && !w.Timestamp.After(to) {
			results = append(results, w)
		}
	}
	return results, nil
}

// RecentTide returns stored tide observations within the range
func (r *MockRepository) RecentTide(ctx context.Context, from, to time.Time) ([]domain.TideObservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var results []domain.TideObservation
	for _, t := range r.tides {
		if !t.Timestamp.Before(from) && !t.Timestamp.After(to) {
			results = append(results, t)
		}
	}
	return results, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
