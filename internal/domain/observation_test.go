package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationCoordinates(t *testing.T) {
	loc := Location{Latitude: 19.0760, Longitude: 72.8777}
	assert.Equal(t, "19.076,72.8777", loc.Coordinates())

	loc = Location{Latitude: -33.8688, Longitude: 151.2093}
	assert.Equal(t, "-33.8688,151.2093", loc.Coordinates())
}

func TestFlatten(t *testing.T) {
	data := ComprehensiveData{
		Location: Location{Latitude: 19.0760, Longitude: 72.8777},
		Weather: WeatherObservation{
			Temperature: 31.2, Humidity: 74, WindSpeed: 9.5, WindDirection: 230, Pressure: 1008,
		},
		Tide:   TideObservation{TideHeight: 2.4, TideType: "rising"},
		Marine: MarineObservation{WaveHeight: 1.7, WavePeriod: 8.2, CurrentSpeed: 0.35, SeaSurfaceTemp: 27.1},
		Pollution: PollutionObservation{
			WaterQuality:           "moderate",
			PollutionLevel:         "moderate",
			Monitoring:             MonitoringData{BacteriaCount: 210},
			IllegalDumpingDetected: true,
		},
	}

	cond := data.Flatten()

	assert.Equal(t, "19.076,72.8777", cond.Location)
	assert.Equal(t, 31.2, cond.Temperature)
	assert.Equal(t, 9.5, cond.WindSpeed)
	assert.Equal(t, 1008.0, cond.Pressure)
	assert.Equal(t, 2.4, cond.TideHeight)
	assert.Equal(t, "rising", cond.TideType)
	assert.Equal(t, 1.7, cond.WaveHeight)
	assert.Equal(t, 27.1, cond.SeaSurfaceTemp)
	assert.Equal(t, "moderate", cond.PollutionLevel)
	assert.Equal(t, 210, cond.BacteriaCount)
	assert.True(t, cond.IllegalDumping)
}
