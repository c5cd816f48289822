package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/coastwatch/backend/internal/domain"
	"github.com/coastwatch/backend/internal/observability"
	"github.com/coastwatch/backend/pkg/utils"
)

// noaaStation is one NOAA Tides & Currents reference station.
type noaaStation struct {
	id   string
	name string
	lat  float64
	lon  float64
}

var noaaStations = []noaaStation{
	{"9447130", "Seattle", 47.6026, -122.3393},
	{"9410230", "San Diego", 32.7157, -117.1611},
	{"9413450", "Monterey", 36.6050, -121.8880},
	{"9414290", "San Francisco", 37.8063, -122.4659},
}

// TideService fetches tide observations from the NOAA Tides & Currents API,
// falling back to a sinusoid simulation on any failure. Fetch never fails.
type TideService struct {
	enabled    bool
	baseURL    string
	httpClient *http.Client
	clock      clockwork.Clock
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewTideService creates a tide source adapter.
func NewTideService(enabled bool, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *TideService {
	return &TideService{
		enabled: enabled,
		baseURL: "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

type noaaPredictionsResponse struct {
	Predictions []struct {
		T    string `json:"t"`
		V    string `json:"v"`
		Type string `json:"type"`
	} `json:"predictions"`
}

// Fetch returns a tide observation for the location along with its
// provenance ("real" or "fallback").
func (s *TideService) Fetch(ctx context.Context, loc domain.Location) (domain.TideObservation, string) {
	if !s.enabled {
		return s.simulate(loc), domain.ProvenanceFallback
	}

	obs, err := s.fetchNOAA(ctx, loc)
	if err != nil {
		s.logger.Warn("tide provider failed, using simulation", "location", loc.Name, "error", err)
		s.metrics.SourceFetches.WithLabelValues("tide", domain.ProvenanceFallback).Inc()
		return s.simulate(loc), domain.ProvenanceFallback
	}

	s.metrics.SourceFetches.WithLabelValues("tide", domain.ProvenanceReal).Inc()
	return obs, domain.ProvenanceReal
}

func (s *TideService) fetchNOAA(ctx context.Context, loc domain.Location) (domain.TideObservation, error) {
	station := nearestStation(loc.Latitude, loc.Longitude)

	url := fmt.Sprintf("%s?station=%s&product=predictions&datum=MLLW&time_zone=lst_ldt&interval=h&format=json&range=24&units=metric",
		s.baseURL, station.id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.TideObservation{}, fmt.Errorf("tide: failed to create request: %w", err)
	}

	start := s.clock.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.TideObservation{}, fmt.Errorf("tide: request failed: %w", err)
	}
	defer resp.Body.Close()
	s.metrics.ProviderDuration.WithLabelValues("tide").Observe(s.clock.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		return domain.TideObservation{}, fmt.Errorf("tide: provider returned status %d", resp.StatusCode)
	}

	var noaaResp noaaPredictionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&noaaResp); err != nil {
		return domain.TideObservation{}, fmt.Errorf("tide: failed to decode response: %w", err)
	}
	if len(noaaResp.Predictions) == 0 {
		return domain.TideObservation{}, fmt.Errorf("tide: station %s returned no predictions", station.id)
	}

	latest := noaaResp.Predictions[len(noaaResp.Predictions)-1]
	height, err := strconv.ParseFloat(latest.V, 64)
	if err != nil {
		return domain.TideObservation{}, fmt.Errorf("tide: malformed height %q: %w", latest.V, err)
	}

	tideType := "low"
	if strings.Contains(latest.Type, "H") {
		tideType = "high"
	}

	return domain.TideObservation{
		Timestamp:  s.clock.Now().UTC(),
		Location:   loc.Coordinates(),
		CityName:   loc.Name,
		Country:    loc.Country,
		Timezone:   loc.Timezone,
		TideHeight: height,
		TideType:   tideType,
		Source:     domain.SourceNOAA,
	}, nil
}

// nearestStation picks the reference station closest to the coordinates.
func nearestStation(lat, lon float64) noaaStation {
	nearest := noaaStations[0]
	minDist := math.Inf(1)
	for _, st := range noaaStations {
		if d := utils.Haversine(lat, lon, st.lat, st.lon); d < minDist {
			minDist = d
			nearest = st
		}
	}
	return nearest
}

// simulate generates a tide observation following a half-day sinusoid
// peaking near hour 6 and hour 18 UTC.
func (s *TideService) simulate(loc domain.Location) domain.TideObservation {
	now := s.clock.Now().UTC()
	hour := now.Hour()

	height := 1.8 + 1.2*math.Abs(math.Sin(float64(hour-6)*math.Pi/12))

	tideType := "falling"
	if hour >= 6 && hour <= 18 {
		tideType = "rising"
	}

	return domain.TideObservation{
		Timestamp:  now,
		Location:   loc.Coordinates(),
		CityName:   loc.Name,
		Country:    loc.Country,
		Timezone:   loc.Timezone,
		TideHeight: utils.RoundTo(height, 2),
		TideType:   tideType,
		Source:     domain.SourceSimulation,
	}
}
