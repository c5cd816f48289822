package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/coastwatch/backend/internal/domain"
	"github.com/coastwatch/backend/internal/observability"
	"github.com/coastwatch/backend/pkg/utils"
)

// WeatherService fetches weather observations from OpenWeather, falling back
// to a locally simulated observation on any failure. Fetch never fails.
type WeatherService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	clock      clockwork.Clock
	rng        *Rand
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewWeatherService creates a weather source adapter.
func NewWeatherService(apiKey string, clock clockwork.Clock, rng *Rand, logger *slog.Logger, metrics *observability.Metrics) *WeatherService {
	return &WeatherService{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		clock:   clock,
		rng:     rng,
		logger:  logger,
		metrics: metrics,
	}
}

// openWeatherResponse represents the OpenWeatherMap API response
type openWeatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
}

// Fetch returns a weather observation for the location along with its
// provenance ("real" or "fallback").
func (s *WeatherService) Fetch(ctx context.Context, loc domain.Location) (domain.WeatherObservation, string) {
	if s.apiKey == "" {
		return s.simulate(loc), domain.ProvenanceFallback
	}

	obs, err := s.fetchOpenWeather(ctx, loc)
	if err != nil {
		s.logger.Warn("weather provider failed, using simulation", "location", loc.Name, "error", err)
		s.metrics.SourceFetches.WithLabelValues("weather", domain.ProvenanceFallback).Inc()
		return s.simulate(loc), domain.ProvenanceFallback
	}

	s.metrics.SourceFetches.WithLabelValues("weather", domain.ProvenanceReal).Inc()
	return obs, domain.ProvenanceReal
}

func (s *WeatherService) fetchOpenWeather(ctx context.Context, loc domain.Location) (domain.WeatherObservation, error) {
	url := fmt.Sprintf("%s?lat=%f&lon=%f&appid=%s&units=metric", s.baseURL, loc.Latitude, loc.Longitude, s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("weather: failed to create request: %w", err)
	}

	start := s.clock.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("weather: request failed: %w", err)
	}
	defer resp.Body.Close()
	s.metrics.ProviderDuration.WithLabelValues("weather").Observe(s.clock.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		return domain.WeatherObservation{}, fmt.Errorf("weather: provider returned status %d", resp.StatusCode)
	}

	var owResp openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&owResp); err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("weather: failed to decode response: %w", err)
	}

	obs := domain.WeatherObservation{
		Timestamp:     s.clock.Now().UTC(),
		Location:      loc.Coordinates(),
		CityName:      loc.Name,
		Country:       loc.Country,
		Timezone:      loc.Timezone,
		Temperature:   owResp.Main.Temp,
		Humidity:      owResp.Main.Humidity,
		WindSpeed:     owResp.Wind.Speed,
		WindDirection: owResp.Wind.Deg,
		Pressure:      owResp.Main.Pressure,
		Source:        domain.SourceOpenWeather,
	}
	if len(owResp.Weather) > 0 {
		obs.Description = owResp.Weather[0].Description
	}

	return obs, nil
}

// simulate generates a weather observation banded by latitude and UTC hour.
// Time-of-day logic uses the observation's own UTC timestamp, not
// location-local time.
func (s *WeatherService) simulate(loc domain.Location) domain.WeatherObservation {
	now := s.clock.Now().UTC()
	hour := now.Hour()

	var baseTemp float64
	switch absLat := math.Abs(loc.Latitude); {
	case absLat < 23.5: // tropical
		baseTemp = 28 + s.rng.Float64Between(-2, 2)
	case absLat < 45: // temperate
		baseTemp = 18 + s.rng.Float64Between(-3, 3)
	default: // polar
		baseTemp = 8 + s.rng.Float64Between(-4, 4)
	}

	if hour >= 6 && hour <= 18 {
		baseTemp += 6
	} else {
		baseTemp -= 4
	}

	var windSpeed float64
	if hour >= 10 && hour <= 16 { // afternoon winds
		windSpeed = 12 + s.rng.Float64Between(-3, 8)
	} else {
		windSpeed = 6 + s.rng.Float64Between(-2, 4)
	}

	return domain.WeatherObservation{
		Timestamp:     now,
		Location:      loc.Coordinates(),
		CityName:      loc.Name,
		Country:       loc.Country,
		Timezone:      loc.Timezone,
		Temperature:   utils.RoundTo(baseTemp, 1),
		Humidity:      s.rng.IntBetween(65, 85),
		WindSpeed:     utils.RoundTo(utils.Clamp(windSpeed, 0, 60), 1),
		WindDirection: s.rng.IntBetween(0, 360),
		Pressure:      1013 + s.rng.Float64Between(-12, 12),
		Description:   "partly cloudy",
		Source:        domain.SourceSimulation,
	}
}
