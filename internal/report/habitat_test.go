package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateHabitatReport(t *testing.T) {
	t.Run("mangrove under calm conditions", func(t *testing.T) {
		rep, err := GenerateHabitatReport(HabitatMangrove, calmDataset())
		require.NoError(t, err)

		// 100 minus wave penalty only: 1.1 m * sensitivity 5
		assert.Equal(t, 94.5, rep.HealthScore)
		assert.Equal(t, HealthHealthy, rep.HealthStatus)
		assert.Equal(t, "monthly", rep.MonitoringFrequency)
		assert.Empty(t, rep.ActiveThreats)
		assert.Contains(t, rep.Profile.KeySpecies, "Rhizophora")
	})

	t.Run("coral reef under stress", func(t *testing.T) {
		data := testDataset(5, 1.9, 2.8, "high")
		data.Marine.SeaSurfaceTemp = 30.5

		rep, err := GenerateHabitatReport(HabitatCoralReef, data)
		require.NoError(t, err)

		// thermal: (4.5-2)*8 = 20, waves: 2.8*8 = 22.4, pollution: 35
		assert.Equal(t, 22.6, rep.HealthScore)
		assert.Equal(t, HealthCritical, rep.HealthStatus)
		assert.Equal(t, "daily", rep.MonitoringFrequency)
		assert.Contains(t, rep.ActiveThreats, "water_pollution")
		assert.Contains(t, rep.ActiveThreats, "storm_damage")
		assert.Contains(t, rep.ActiveThreats, "thermal_stress")
	})

	t.Run("score never leaves the scale", func(t *testing.T) {
		data := testDataset(5, 1.9, 9, "high")
		data.Marine.SeaSurfaceTemp = 40
		data.Pollution.IllegalDumpingDetected = true

		rep, err := GenerateHabitatReport(HabitatSeagrass, data)
		require.NoError(t, err)
		assert.Equal(t, 0.0, rep.HealthScore)
	})

	t.Run("unknown habitat", func(t *testing.T) {
		_, err := GenerateHabitatReport("kelp_forest", calmDataset())
		assert.ErrorIs(t, err, ErrUnknownKey)
	})
}

func TestHealthStatus(t *testing.T) {
	assert.Equal(t, HealthHealthy, healthStatus(75))
	assert.Equal(t, HealthStressed, healthStatus(60))
	assert.Equal(t, HealthDegraded, healthStatus(30))
	assert.Equal(t, HealthCritical, healthStatus(10))
}
