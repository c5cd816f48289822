package service

import (
	"context"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastwatch/backend/internal/domain"
	"github.com/coastwatch/backend/internal/observability"
)

func newMarineService(apiKey string, at clockwork.Clock) *MarineService {
	return NewMarineService(apiKey, at, NewRand(42), testLogger(), observability.NewMetricsForTesting())
}

func TestSeaCondition(t *testing.T) {
	tests := []struct {
		waveHeight float64
		want       string
	}{
		{0.3, "calm"},
		{0.7, "slight"},
		{1.5, "moderate"},
		{2.5, "rough"},
		{3.5, "very_rough"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, seaCondition(tt.waveHeight), "wave height %.1f", tt.waveHeight)
	}
}

func TestMarineSimulationBands(t *testing.T) {
	t.Run("daytime", func(t *testing.T) {
		svc := newMarineService("", clockwork.NewFakeClockAt(noonUTC))
		for i := 0; i < 50; i++ {
			obs := svc.simulate(tropicalLocation())
			assert.GreaterOrEqual(t, obs.WaveHeight, 1.5)
			assert.LessOrEqual(t, obs.WaveHeight, 2.6)
			assert.Equal(t, seaCondition(obs.WaveHeight), obs.SeaCondition)
		}
	})

	t.Run("nighttime", func(t *testing.T) {
		svc := newMarineService("", clockwork.NewFakeClockAt(nightUTC))
		for i := 0; i < 50; i++ {
			obs := svc.simulate(tropicalLocation())
			assert.GreaterOrEqual(t, obs.WaveHeight, 1.0)
			assert.LessOrEqual(t, obs.WaveHeight, 1.6)
		}
	})

	t.Run("secondary readings", func(t *testing.T) {
		svc := newMarineService("", clockwork.NewFakeClockAt(noonUTC))
		obs := svc.simulate(tropicalLocation())
		assert.InDelta(t, 8.0, obs.WavePeriod, 1)
		assert.InDelta(t, 0.3, obs.CurrentSpeed, 0.2)
		assert.InDelta(t, 45, obs.CurrentDirection, 15)
		assert.InDelta(t, 26.5, obs.SeaSurfaceTemp, 1)
		assert.Equal(t, domain.SourceSimulation, obs.Source)
	})
}

func TestMarineFetchReal(t *testing.T) {
	svc := newMarineService("test-key", clockwork.NewFakeClockAt(noonUTC))
	httpmock.ActivateNonDefault(svc.httpClient)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://api\.stormglass\.io/v2/weather/point`,
		httpmock.NewStringResponder(200, `{"data": {
			"waveHeight": {"sg": 2.2},
			"wavePeriod": {"sg": 9.1},
			"currentSpeed": {"sg": 0.4},
			"currentDirection": {"sg": 120},
			"waterTemperature": {"sg": 27.8}
		}}`))

	obs, provenance := svc.Fetch(context.Background(), tropicalLocation())

	require.Equal(t, domain.ProvenanceReal, provenance)
	assert.Equal(t, domain.SourceStormglass, obs.Source)
	assert.Equal(t, 2.2, obs.WaveHeight)
	assert.Equal(t, "rough", obs.SeaCondition)
	assert.Equal(t, 27.8, obs.SeaSurfaceTemp)
}

func TestMarineFetchWithoutKey(t *testing.T) {
	svc := newMarineService("", clockwork.NewFakeClockAt(noonUTC))

	obs, provenance := svc.Fetch(context.Background(), tropicalLocation())

	assert.Equal(t, domain.ProvenanceFallback, provenance)
	assert.Equal(t, domain.SourceSimulation, obs.Source)
}
