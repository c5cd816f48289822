package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/coastwatch/backend/internal/domain"
	"github.com/coastwatch/backend/internal/observability"
)

// PollutionService fetches water-quality observations derived from the WAQI
// air-quality feed, falling back to a rush-hour banded simulation on any
// failure. Fetch never fails.
type PollutionService struct {
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	clock       clockwork.Clock
	rng         *Rand
	dumpingFlag bool
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewPollutionService creates a pollution source adapter. When dumpingFlag
// is false, simulated observations never set illegal_dumping_detected.
func NewPollutionService(apiKey string, dumpingFlag bool, clock clockwork.Clock, rng *Rand, logger *slog.Logger, metrics *observability.Metrics) *PollutionService {
	return &PollutionService{
		apiKey:  apiKey,
		baseURL: "https://api.waqi.info",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		clock:       clock,
		rng:         rng,
		dumpingFlag: dumpingFlag,
		logger:      logger,
		metrics:     metrics,
	}
}

type waqiResponse struct {
	Status string `json:"status"`
	Data   struct {
		AQI int `json:"aqi"`
	} `json:"data"`
}

// Fetch returns a pollution observation for the location along with its
// provenance ("real" or "fallback").
func (s *PollutionService) Fetch(ctx context.Context, loc domain.Location) (domain.PollutionObservation, string) {
	if s.apiKey == "" {
		return s.simulate(loc), domain.ProvenanceFallback
	}

	obs, err := s.fetchWAQI(ctx, loc)
	if err != nil {
		s.logger.Warn("pollution provider failed, using simulation", "location", loc.Name, "error", err)
		s.metrics.SourceFetches.WithLabelValues("pollution", domain.ProvenanceFallback).Inc()
		return s.simulate(loc), domain.ProvenanceFallback
	}

	s.metrics.SourceFetches.WithLabelValues("pollution", domain.ProvenanceReal).Inc()
	return obs, domain.ProvenanceReal
}

func (s *PollutionService) fetchWAQI(ctx context.Context, loc domain.Location) (domain.PollutionObservation, error) {
	url := fmt.Sprintf("%s/feed/geo:%f;%f/?token=%s", s.baseURL, loc.Latitude, loc.Longitude, s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.PollutionObservation{}, fmt.Errorf("pollution: failed to create request: %w", err)
	}

	start := s.clock.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.PollutionObservation{}, fmt.Errorf("pollution: request failed: %w", err)
	}
	defer resp.Body.Close()
	s.metrics.ProviderDuration.WithLabelValues("pollution").Observe(s.clock.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		return domain.PollutionObservation{}, fmt.Errorf("pollution: provider returned status %d", resp.StatusCode)
	}

	var waqiResp waqiResponse
	if err := json.NewDecoder(resp.Body).Decode(&waqiResp); err != nil {
		return domain.PollutionObservation{}, fmt.Errorf("pollution: failed to decode response: %w", err)
	}
	if waqiResp.Status != "ok" {
		return domain.PollutionObservation{}, fmt.Errorf("pollution: provider status %q", waqiResp.Status)
	}

	waterQuality, pollutionLevel := classifyAQI(waqiResp.Data.AQI)

	return domain.PollutionObservation{
		Timestamp:      s.clock.Now().UTC(),
		Location:       loc.Coordinates(),
		CityName:       loc.Name,
		Country:        loc.Country,
		Timezone:       loc.Timezone,
		WaterQuality:   waterQuality,
		PollutionLevel: pollutionLevel,
		Monitoring: domain.MonitoringData{
			Turbidity:       10.0 + s.rng.Float64Between(-3, 3),
			DissolvedOxygen: 7.0 + s.rng.Float64Between(-0.5, 0.5),
			PH:              7.0 + s.rng.Float64Between(-0.3, 0.3),
			BacteriaCount:   100 + s.rng.IntBetween(-30, 50),
		},
		IllegalDumpingDetected: s.dumpingDetected(),
		Source:                 domain.SourceWAQI,
	}, nil
}

func classifyAQI(aqi int) (waterQuality, pollutionLevel string) {
	switch {
	case aqi < 50:
		return "good", "low"
	case aqi < 100:
		return "moderate", "moderate"
	default:
		return "poor", "high"
	}
}

// simulate generates a pollution observation with elevated readings during
// the two rush-hour windows (07:00-09:00 and 17:00-19:00 UTC).
func (s *PollutionService) simulate(loc domain.Location) domain.PollutionObservation {
	now := s.clock.Now().UTC()
	hour := now.Hour()

	pollutionLevel := "low"
	bacteriaCount := 90 + s.rng.IntBetween(-25, 40)
	if (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19) {
		pollutionLevel = "moderate"
		bacteriaCount = 180 + s.rng.IntBetween(-40, 80)
	}

	waterQuality := "good"
	if pollutionLevel != "low" {
		waterQuality = "moderate"
	}

	return domain.PollutionObservation{
		Timestamp:      now,
		Location:       loc.Coordinates(),
		CityName:       loc.Name,
		Country:        loc.Country,
		Timezone:       loc.Timezone,
		WaterQuality:   waterQuality,
		PollutionLevel: pollutionLevel,
		Monitoring: domain.MonitoringData{
			Turbidity:       10.0 + s.rng.Float64Between(-2, 2),
			DissolvedOxygen: 7.0 + s.rng.Float64Between(-0.4, 0.4),
			PH:              7.0 + s.rng.Float64Between(-0.2, 0.2),
			BacteriaCount:   bacteriaCount,
		},
		IllegalDumpingDetected: s.dumpingDetected(),
		Source:                 domain.SourceSimulation,
	}
}

func (s *PollutionService) dumpingDetected() bool {
	if !s.dumpingFlag {
		return false
	}
	return s.rng.Bool()
}
