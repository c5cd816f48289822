package service

import (
	"context"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastwatch/backend/internal/domain"
	"github.com/coastwatch/backend/internal/observability"
)

func newTideService(enabled bool, at clockwork.Clock) *TideService {
	return NewTideService(enabled, at, testLogger(), observability.NewMetricsForTesting())
}

func TestTideSimulation(t *testing.T) {
	t.Run("sinusoid extremes", func(t *testing.T) {
		// Trough at hour 6, crest at hour 12.
		svc := newTideService(false, clockwork.NewFakeClockAt(time.Date(2025, 6, 15, 6, 0, 0, 0, time.UTC)))
		obs, provenance := svc.Fetch(context.Background(), tropicalLocation())
		assert.Equal(t, domain.ProvenanceFallback, provenance)
		assert.Equal(t, 1.8, obs.TideHeight)

		svc = newTideService(false, clockwork.NewFakeClockAt(noonUTC))
		obs, _ = svc.Fetch(context.Background(), tropicalLocation())
		assert.Equal(t, 3.0, obs.TideHeight)
	})

	t.Run("bounded for every hour", func(t *testing.T) {
		for hour := 0; hour < 24; hour++ {
			at := time.Date(2025, 6, 15, hour, 0, 0, 0, time.UTC)
			svc := newTideService(false, clockwork.NewFakeClockAt(at))
			obs := svc.simulate(tropicalLocation())

			assert.GreaterOrEqual(t, obs.TideHeight, 1.8, "hour %d", hour)
			assert.LessOrEqual(t, obs.TideHeight, 3.0, "hour %d", hour)

			wantType := "falling"
			if hour >= 6 && hour <= 18 {
				wantType = "rising"
			}
			assert.Equal(t, wantType, obs.TideType, "hour %d", hour)
		}
	})
}

func TestNearestStation(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lon  float64
		want string
	}{
		{"seattle coords", 47.6026, -122.3393, "9447130"},
		{"san diego coords", 32.7157, -117.1611, "9410230"},
		{"miami is closest to san diego", 25.7617, -80.1918, "9410230"},
		{"vancouver is closest to seattle", 49.2827, -123.1207, "9447130"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nearestStation(tt.lat, tt.lon).id)
		})
	}
}

func TestTideFetchReal(t *testing.T) {
	svc := newTideService(true, clockwork.NewFakeClockAt(noonUTC))
	httpmock.ActivateNonDefault(svc.httpClient)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://api\.tidesandcurrents\.noaa\.gov/`,
		httpmock.NewStringResponder(200, `{"predictions": [
			{"t": "2025-06-15 10:00", "v": "1.102", "type": "L"},
			{"t": "2025-06-15 16:12", "v": "2.451", "type": "HH"}
		]}`))

	obs, provenance := svc.Fetch(context.Background(), tropicalLocation())

	require.Equal(t, domain.ProvenanceReal, provenance)
	assert.Equal(t, domain.SourceNOAA, obs.Source)
	assert.Equal(t, 2.451, obs.TideHeight)
	assert.Equal(t, "high", obs.TideType)
}

func TestTideFetchEmptyPredictions(t *testing.T) {
	svc := newTideService(true, clockwork.NewFakeClockAt(noonUTC))
	httpmock.ActivateNonDefault(svc.httpClient)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://api\.tidesandcurrents\.noaa\.gov/`,
		httpmock.NewStringResponder(200, `{"predictions": []}`))

	obs, provenance := svc.Fetch(context.Background(), tropicalLocation())

	assert.Equal(t, domain.ProvenanceFallback, provenance)
	assert.Equal(t, domain.SourceSimulation, obs.Source)
}
