package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/coastwatch/backend/internal/domain"
	"github.com/coastwatch/backend/internal/observability"
)

// AlertService derives alerts from aggregated data and keeps the in-memory
// registry of every alert created. The registry is mutated only by derive
// inserts and deactivations, guarded by a single mutex.
type AlertService struct {
	classifier Classifier
	clock      clockwork.Clock
	rng        *Rand
	demoChance float64
	logger     *slog.Logger
	metrics    *observability.Metrics

	mu       sync.Mutex
	registry map[string]*domain.Alert
	order    []string // insertion order for stable listings
}

// NewAlertService creates an alert deriver with an empty registry.
// demoChance is the probability of injecting one synthetic flooding_risk
// alert per derivation; 0 disables it.
func NewAlertService(classifier Classifier, demoChance float64, clock clockwork.Clock, rng *Rand, logger *slog.Logger, metrics *observability.Metrics) *AlertService {
	return &AlertService{
		classifier: classifier,
		clock:      clock,
		rng:        rng,
		demoChance: demoChance,
		logger:     logger,
		metrics:    metrics,
		registry:   make(map[string]*domain.Alert),
	}
}

// DeriveAlerts flattens the dataset, runs the classifier, and registers one
// alert per finding. With the configured probability it also injects one
// synthetic flooding_risk alert attributed to system monitoring; this is a
// demo-realism feature, independent of the actual data.
func (s *AlertService) DeriveAlerts(ctx context.Context, data domain.ComprehensiveData) []domain.Alert {
	findings := s.classifier.Classify(ctx, data.Flatten())

	alerts := make([]domain.Alert, 0, len(findings)+1)
	for _, f := range findings {
		alerts = append(alerts, s.newAlert(f.Type, f.Severity, f.Location, f.Description, "classifier"))
	}

	if s.rng.Chance(s.demoChance) {
		severity := domain.SeverityLow
		if s.rng.Bool() {
			severity = domain.SeverityMedium
		}
		alerts = append(alerts, s.newAlert(
			domain.AlertFloodingRisk,
			severity,
			data.Location.Coordinates(),
			"Minor flooding risk in low-lying coastal areas. Monitor local conditions.",
			"system_monitoring",
		))
	}

	s.mu.Lock()
	for i := range alerts {
		a := alerts[i]
		s.registry[a.ID] = &a
		s.order = append(s.order, a.ID)
	}
	s.mu.Unlock()

	for _, a := range alerts {
		s.metrics.AlertsGenerated.WithLabelValues(a.Severity).Inc()
	}

	return alerts
}

// ActiveAlerts returns all active alerts in insertion order.
func (s *AlertService) ActiveAlerts() []domain.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	var active []domain.Alert
	for _, id := range s.order {
		if a := s.registry[id]; a.IsActive {
			active = append(active, *a)
		}
	}
	return active
}

// Deactivate soft-disables the alert with the given id. Returns false when
// the id is not in the registry.
func (s *AlertService) Deactivate(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.registry[id]
	if !ok {
		return false
	}
	a.IsActive = false
	s.metrics.AlertsDeactivated.Inc()
	return true
}

func (s *AlertService) newAlert(alertType, severity, location, description, triggeredBy string) domain.Alert {
	now := s.clock.Now().UTC()
	return domain.Alert{
		ID:          "alert_" + now.Format("20060102_150405") + "_" + uuid.NewString()[:8],
		AlertType:   alertType,
		Severity:    severity,
		Location:    location,
		Description: description,
		IsActive:    true,
		TriggeredBy: triggeredBy,
		Timestamp:   now,
		Source:      "alert_service",
	}
}
