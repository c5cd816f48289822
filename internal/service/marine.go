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
	"github.com/coastwatch/backend/pkg/utils"
)

// MarineService fetches sea-state observations from the Stormglass API,
// falling back to a day/night banded simulation on any failure. Fetch never
// fails.
type MarineService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	clock      clockwork.Clock
	rng        *Rand
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewMarineService creates a marine source adapter.
func NewMarineService(apiKey string, clock clockwork.Clock, rng *Rand, logger *slog.Logger, metrics *observability.Metrics) *MarineService {
	return &MarineService{
		apiKey:  apiKey,
		baseURL: "https://api.stormglass.io/v2/weather/point",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		clock:   clock,
		rng:     rng,
		logger:  logger,
		metrics: metrics,
	}
}

type sgValue struct {
	SG float64 `json:"sg"`
}

type stormglassResponse struct {
	Data struct {
		WaveHeight       sgValue `json:"waveHeight"`
		WavePeriod       sgValue `json:"wavePeriod"`
		CurrentSpeed     sgValue `json:"currentSpeed"`
		CurrentDirection sgValue `json:"currentDirection"`
		WaterTemperature sgValue `json:"waterTemperature"`
	} `json:"data"`
}

// Fetch returns a marine observation for the location along with its
// provenance ("real" or "fallback").
func (s *MarineService) Fetch(ctx context.Context, loc domain.Location) (domain.MarineObservation, string) {
	if s.apiKey == "" {
		return s.simulate(loc), domain.ProvenanceFallback
	}

	obs, err := s.fetchStormglass(ctx, loc)
	if err != nil {
		s.logger.Warn("marine provider failed, using simulation", "location", loc.Name, "error", err)
		s.metrics.SourceFetches.WithLabelValues("marine", domain.ProvenanceFallback).Inc()
		return s.simulate(loc), domain.ProvenanceFallback
	}

	s.metrics.SourceFetches.WithLabelValues("marine", domain.ProvenanceReal).Inc()
	return obs, domain.ProvenanceReal
}

func (s *MarineService) fetchStormglass(ctx context.Context, loc domain.Location) (domain.MarineObservation, error) {
	url := fmt.Sprintf("%s?lat=%f&lng=%f&params=waveHeight,wavePeriod,currentSpeed,currentDirection,waterTemperature&source=sg",
		s.baseURL, loc.Latitude, loc.Longitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.MarineObservation{}, fmt.Errorf("marine: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", s.apiKey)

	start := s.clock.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.MarineObservation{}, fmt.Errorf("marine: request failed: %w", err)
	}
	defer resp.Body.Close()
	s.metrics.ProviderDuration.WithLabelValues("marine").Observe(s.clock.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		return domain.MarineObservation{}, fmt.Errorf("marine: provider returned status %d", resp.StatusCode)
	}

	var sgResp stormglassResponse
	if err := json.NewDecoder(resp.Body).Decode(&sgResp); err != nil {
		return domain.MarineObservation{}, fmt.Errorf("marine: failed to decode response: %w", err)
	}

	return domain.MarineObservation{
		Timestamp:        s.clock.Now().UTC(),
		Location:         loc.Coordinates(),
		CityName:         loc.Name,
		Country:          loc.Country,
		Timezone:         loc.Timezone,
		WaveHeight:       sgResp.Data.WaveHeight.SG,
		WavePeriod:       sgResp.Data.WavePeriod.SG,
		CurrentSpeed:     sgResp.Data.CurrentSpeed.SG,
		CurrentDirection: sgResp.Data.CurrentDirection.SG,
		SeaSurfaceTemp:   sgResp.Data.WaterTemperature.SG,
		SeaCondition:     seaCondition(sgResp.Data.WaveHeight.SG),
		Source:           domain.SourceStormglass,
	}, nil
}

// seaCondition classifies wave height into a mariner-facing category.
func seaCondition(waveHeight float64) string {
	switch {
	case waveHeight < 0.5:
		return "calm"
	case waveHeight < 1.0:
		return "slight"
	case waveHeight < 2.0:
		return "moderate"
	case waveHeight < 3.0:
		return "rough"
	default:
		return "very_rough"
	}
}

// simulate generates a marine observation with a daytime wave band
// (08:00-16:00 UTC) above the nighttime band.
func (s *MarineService) simulate(loc domain.Location) domain.MarineObservation {
	now := s.clock.Now().UTC()
	hour := now.Hour()

	var waveHeight float64
	if hour >= 8 && hour <= 16 {
		waveHeight = 1.8 + s.rng.Float64Between(-0.3, 0.8)
	} else {
		waveHeight = 1.2 + s.rng.Float64Between(-0.2, 0.4)
	}
	waveHeight = utils.RoundTo(waveHeight, 1)

	return domain.MarineObservation{
		Timestamp:        now,
		Location:         loc.Coordinates(),
		CityName:         loc.Name,
		Country:          loc.Country,
		Timezone:         loc.Timezone,
		WaveHeight:       waveHeight,
		WavePeriod:       8.0 + s.rng.Float64Between(-1, 1),
		CurrentSpeed:     0.3 + s.rng.Float64Between(-0.1, 0.2),
		CurrentDirection: 45 + s.rng.Float64Between(-15, 15),
		SeaSurfaceTemp:   26.5 + s.rng.Float64Between(-1, 1),
		SeaCondition:     seaCondition(waveHeight),
		Source:           domain.SourceSimulation,
	}
}
