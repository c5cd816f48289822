package service

import (
	"context"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastwatch/backend/internal/domain"
)

func calmConditions() domain.Conditions {
	return domain.Conditions{
		Location:       "19.076,72.8777",
		Temperature:    29,
		WindSpeed:      5,
		Pressure:       1013,
		TideHeight:     1.9,
		WaveHeight:     1.1,
		PollutionLevel: "low",
		BacteriaCount:  90,
	}
}

func TestRuleFindings(t *testing.T) {
	t.Run("calm conditions yield nothing", func(t *testing.T) {
		assert.Empty(t, ruleFindings(calmConditions()))
	})

	t.Run("wind thresholds", func(t *testing.T) {
		tests := []struct {
			windSpeed    float64
			wantSeverity string
		}{
			{16, domain.SeverityMedium},
			{21, domain.SeverityHigh},
			{29, domain.SeverityCritical},
		}
		for _, tt := range tests {
			cond := calmConditions()
			cond.WindSpeed = tt.windSpeed
			findings := ruleFindings(cond)
			require.Len(t, findings, 1, "wind %.0f", tt.windSpeed)
			assert.Equal(t, domain.AlertHighWind, findings[0].Type)
			assert.Equal(t, tt.wantSeverity, findings[0].Severity)
		}
	})

	t.Run("storm risk needs wind and low pressure", func(t *testing.T) {
		cond := calmConditions()
		cond.WindSpeed = 22
		cond.Pressure = 990
		findings := ruleFindings(cond)
		require.Len(t, findings, 2)
		assert.Equal(t, domain.AlertHighWind, findings[0].Type)
		assert.Equal(t, domain.AlertStormRisk, findings[1].Type)
		assert.Equal(t, domain.SeverityHigh, findings[1].Severity)
	})

	t.Run("tide thresholds", func(t *testing.T) {
		cond := calmConditions()
		cond.TideHeight = 2.6
		findings := ruleFindings(cond)
		require.Len(t, findings, 1)
		assert.Equal(t, domain.AlertHighTide, findings[0].Type)
		assert.Equal(t, domain.SeverityLow, findings[0].Severity)

		cond.TideHeight = 2.9
		findings = ruleFindings(cond)
		require.Len(t, findings, 1)
		assert.Equal(t, domain.SeverityMedium, findings[0].Severity)
	})

	t.Run("wave thresholds", func(t *testing.T) {
		cond := calmConditions()
		cond.WaveHeight = 2.6
		findings := ruleFindings(cond)
		require.Len(t, findings, 1)
		assert.Equal(t, domain.AlertRoughSeas, findings[0].Type)
		assert.Equal(t, domain.SeverityMedium, findings[0].Severity)

		cond.WaveHeight = 3.7
		findings = ruleFindings(cond)
		require.Len(t, findings, 1)
		assert.Equal(t, domain.SeverityHigh, findings[0].Severity)
	})

	t.Run("pollution levels", func(t *testing.T) {
		cond := calmConditions()
		cond.PollutionLevel = "high"
		findings := ruleFindings(cond)
		require.Len(t, findings, 1)
		assert.Equal(t, domain.AlertPollution, findings[0].Type)
		assert.Equal(t, domain.SeverityHigh, findings[0].Severity)

		cond.PollutionLevel = "moderate"
		cond.BacteriaCount = 250
		findings = ruleFindings(cond)
		require.Len(t, findings, 1)
		assert.Equal(t, domain.SeverityMedium, findings[0].Severity)

		// moderate with a low count stays quiet
		cond.BacteriaCount = 150
		assert.Empty(t, ruleFindings(cond))
	})
}

func TestClassifierBridge(t *testing.T) {
	t.Run("external findings pass through", func(t *testing.T) {
		bridge := NewClassifierBridge("http://classifier.test", testLogger())
		httpmock.ActivateNonDefault(bridge.httpClient)
		defer httpmock.DeactivateAndReset()

		httpmock.RegisterResponder("POST", "http://classifier.test/classify",
			httpmock.NewStringResponder(200, `{"threats": [
				{"type": "storm_risk", "severity": "high", "location": "19.076,72.8777", "description": "Cyclonic pattern detected"}
			]}`))

		findings := bridge.Classify(context.Background(), calmConditions())
		require.Len(t, findings, 1)
		assert.Equal(t, domain.AlertStormRisk, findings[0].Type)
		assert.Equal(t, "Cyclonic pattern detected", findings[0].Description)
	})

	t.Run("failure falls back to threshold rules", func(t *testing.T) {
		bridge := NewClassifierBridge("http://classifier.test", testLogger())
		httpmock.ActivateNonDefault(bridge.httpClient)
		defer httpmock.DeactivateAndReset()

		httpmock.RegisterResponder("POST", "http://classifier.test/classify",
			httpmock.NewStringResponder(503, "unavailable"))

		cond := calmConditions()
		cond.WindSpeed = 16
		findings := bridge.Classify(context.Background(), cond)
		require.Len(t, findings, 1)
		assert.Equal(t, domain.AlertHighWind, findings[0].Type)
	})
}
