package service

import (
	"context"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastwatch/backend/internal/domain"
	"github.com/coastwatch/backend/internal/observability"
)

// stubClassifier returns a fixed finding set.
type stubClassifier struct {
	findings []domain.Finding
}

func (s *stubClassifier) Classify(ctx context.Context, cond domain.Conditions) []domain.Finding {
	return s.findings
}

func newAlertService(findings []domain.Finding, demoChance float64) *AlertService {
	return NewAlertService(
		&stubClassifier{findings: findings},
		demoChance,
		clockwork.NewFakeClockAt(noonUTC),
		NewRand(42),
		testLogger(),
		observability.NewMetricsForTesting(),
	)
}

func testDataset() domain.ComprehensiveData {
	return domain.ComprehensiveData{
		Location: tropicalLocation(),
		Source:   domain.SourceUnified,
	}
}

func TestDeriveAlertsFromFindings(t *testing.T) {
	findings := []domain.Finding{
		{Type: domain.AlertHighWind, Severity: domain.SeverityHigh, Location: "19.076,72.8777", Description: "Strong winds"},
		{Type: domain.AlertHighTide, Severity: domain.SeverityLow, Location: "19.076,72.8777", Description: "High tide"},
	}
	svc := newAlertService(findings, 0)

	alerts := svc.DeriveAlerts(context.Background(), testDataset())

	require.Len(t, alerts, 2)
	for i, a := range alerts {
		assert.Equal(t, findings[i].Type, a.AlertType)
		assert.Equal(t, findings[i].Severity, a.Severity)
		assert.True(t, a.IsActive)
		assert.Equal(t, "classifier", a.TriggeredBy)
		assert.Equal(t, "alert_service", a.Source)
		assert.True(t, strings.HasPrefix(a.ID, "alert_20250615_120000_"), "id %q", a.ID)
	}
	assert.NotEqual(t, alerts[0].ID, alerts[1].ID)
}

func TestDeriveAlertsCalm(t *testing.T) {
	svc := newAlertService(nil, 0)
	assert.Empty(t, svc.DeriveAlerts(context.Background(), testDataset()))
	assert.Empty(t, svc.ActiveAlerts())
}

func TestDeriveAlertsDemoInjection(t *testing.T) {
	svc := newAlertService(nil, 1)

	alerts := svc.DeriveAlerts(context.Background(), testDataset())

	require.Len(t, alerts, 1)
	a := alerts[0]
	assert.Equal(t, domain.AlertFloodingRisk, a.AlertType)
	assert.Contains(t, []string{domain.SeverityLow, domain.SeverityMedium}, a.Severity)
	assert.Equal(t, "system_monitoring", a.TriggeredBy)
	assert.Equal(t, "19.076,72.8777", a.Location)
}

func TestAlertRegistry(t *testing.T) {
	findings := []domain.Finding{
		{Type: domain.AlertHighWind, Severity: domain.SeverityHigh},
		{Type: domain.AlertRoughSeas, Severity: domain.SeverityMedium},
	}
	svc := newAlertService(findings, 0)
	alerts := svc.DeriveAlerts(context.Background(), testDataset())
	require.Len(t, alerts, 2)

	t.Run("listing preserves insertion order", func(t *testing.T) {
		active := svc.ActiveAlerts()
		require.Len(t, active, 2)
		assert.Equal(t, alerts[0].ID, active[0].ID)
		assert.Equal(t, alerts[1].ID, active[1].ID)
	})

	t.Run("deactivation hides but does not delete", func(t *testing.T) {
		assert.True(t, svc.Deactivate(alerts[0].ID))

		active := svc.ActiveAlerts()
		require.Len(t, active, 1)
		assert.Equal(t, alerts[1].ID, active[0].ID)

		// A second deactivation still finds the registry entry.
		assert.True(t, svc.Deactivate(alerts[0].ID))
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.False(t, svc.Deactivate("alert_nope"))
	})
}
