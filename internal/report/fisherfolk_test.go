package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFishingSafetyReport(t *testing.T) {
	t.Run("calm conditions", func(t *testing.T) {
		rep := GenerateFishingSafetyReport(calmDataset())

		assert.Equal(t, "Mumbai, India", rep.Location)
		assert.Equal(t, ZoneSafe, rep.OverallStatus)
		require.Len(t, rep.Zones, 3)
		for _, z := range rep.Zones {
			assert.Equal(t, ZoneSafe, z.Status)
		}
		assert.Len(t, rep.SafetyChecklist, 3)
	})

	t.Run("wind grounds the deep sea fleet first", func(t *testing.T) {
		// 11 m/s exceeds the deep_sea limit (8) but not 1.5x it, and stays
		// under the nearshore limit (12).
		rep := GenerateFishingSafetyReport(testDataset(11, 1.9, 1.1, "low"))

		byName := map[string]string{}
		for _, z := range rep.Zones {
			byName[z.Zone.Name] = z.Status
		}
		assert.Equal(t, ZoneSafe, byName["nearshore"])
		assert.Equal(t, ZoneCaution, byName["offshore"])
		assert.Equal(t, ZoneCaution, byName["deep_sea"])
		assert.Equal(t, ZoneCaution, rep.OverallStatus)
		assert.Len(t, rep.SafetyChecklist, 5)
	})

	t.Run("severe conditions", func(t *testing.T) {
		rep := GenerateFishingSafetyReport(testDataset(20, 1.9, 4, "low"))

		assert.Equal(t, ZoneUnsafe, rep.OverallStatus)
		assert.Contains(t, rep.SafetyChecklist, "Suspend fishing operations until conditions improve")
	})

	t.Run("high pollution closes everything", func(t *testing.T) {
		rep := GenerateFishingSafetyReport(testDataset(5, 1.9, 1.1, "high"))

		assert.Equal(t, ZoneProhibited, rep.OverallStatus)
		for _, z := range rep.Zones {
			assert.Equal(t, ZoneProhibited, z.Status)
		}
	})
}
