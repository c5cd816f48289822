package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/coastwatch/backend/internal/domain"
)

// Classifier detects threats in a flat conditions record.
type Classifier interface {
	Classify(ctx context.Context, cond domain.Conditions) []domain.Finding
}

// ClassifierBridge handles communication with the external threat
// classifier service. On any failure it falls back to local threshold
// rules, so Classify never fails.
type ClassifierBridge struct {
	serviceURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClassifierBridge creates a classifier bridge.
func NewClassifierBridge(serviceURL string, logger *slog.Logger) *ClassifierBridge {
	return &ClassifierBridge{
		serviceURL: serviceURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

type classifyResponse struct {
	Threats []domain.Finding `json:"threats"`
}

// Classify sends the conditions record to the external classifier and
// returns its findings. Any failure routes to the threshold rule set.
func (b *ClassifierBridge) Classify(ctx context.Context, cond domain.Conditions) []domain.Finding {
	body, err := json.Marshal(cond)
	if err != nil {
		return ruleFindings(cond)
	}

	url := fmt.Sprintf("%s/classify", b.serviceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return ruleFindings(cond)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		b.logger.Warn("classifier unreachable, using threshold rules", "error", err)
		return ruleFindings(cond)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b.logger.Warn("classifier returned non-OK status, using threshold rules", "status", resp.StatusCode)
		return ruleFindings(cond)
	}

	var result classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		b.logger.Warn("classifier response malformed, using threshold rules", "error", err)
		return ruleFindings(cond)
	}

	return result.Threats
}

// ruleFindings applies the local threshold rule set.
func ruleFindings(cond domain.Conditions) []domain.Finding {
	var findings []domain.Finding

	if cond.WindSpeed >= 15 {
		severity := domain.SeverityMedium
		if cond.WindSpeed >= 20 {
			severity = domain.SeverityHigh
		}
		if cond.WindSpeed >= 28 {
			severity = domain.SeverityCritical
		}
		findings = append(findings, domain.Finding{
			Type:        domain.AlertHighWind,
			Severity:    severity,
			Location:    cond.Location,
			Description: fmt.Sprintf("Strong winds detected: %.1f m/s. Secure loose objects and avoid exposed areas.", cond.WindSpeed),
		})
	}

	if cond.WindSpeed >= 20 && cond.Pressure < 995 {
		findings = append(findings, domain.Finding{
			Type:        domain.AlertStormRisk,
			Severity:    domain.SeverityHigh,
			Location:    cond.Location,
			Description: fmt.Sprintf("Storm conditions: wind %.1f m/s with pressure %.0f hPa. Prepare for severe weather.", cond.WindSpeed, cond.Pressure),
		})
	}

	if cond.TideHeight >= 2.5 {
		severity := domain.SeverityLow
		if cond.TideHeight >= 2.8 {
			severity = domain.SeverityMedium
		}
		findings = append(findings, domain.Finding{
			Type:        domain.AlertHighTide,
			Severity:    severity,
			Location:    cond.Location,
			Description: fmt.Sprintf("High tide warning: %.2f m. Low-lying coastal areas may experience flooding.", cond.TideHeight),
		})
	}

	if cond.WaveHeight >= 2.5 {
		severity := domain.SeverityMedium
		if cond.WaveHeight >= 3.5 {
			severity = domain.SeverityHigh
		}
		findings = append(findings, domain.Finding{
			Type:        domain.AlertRoughSeas,
			Severity:    severity,
			Location:    cond.Location,
			Description: fmt.Sprintf("Rough sea conditions: wave height %.1f m. Small craft should remain in port.", cond.WaveHeight),
		})
	}

	switch {
	case cond.PollutionLevel == "high":
		findings = append(findings, domain.Finding{
			Type:        domain.AlertPollution,
			Severity:    domain.SeverityHigh,
			Location:    cond.Location,
			Description: "Water quality alert: high pollution levels detected. Avoid water contact.",
		})
	case cond.PollutionLevel == "moderate" && cond.BacteriaCount > 200:
		findings = append(findings, domain.Finding{
			Type:        domain.AlertPollution,
			Severity:    domain.SeverityMedium,
			Location:    cond.Location,
			Description: fmt.Sprintf("Water quality alert: elevated bacteria count (%d CFU). Swimming not advised.", cond.BacteriaCount),
		})
	}

	return findings
}
