package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/coastwatch/backend/internal/domain"
	"github.com/coastwatch/backend/internal/location"
	"github.com/coastwatch/backend/internal/observability"
)

// Aggregator resolves a location once and fans out to all four source
// adapters concurrently. The adapters never fail; if anything outside their
// own fallback handling panics, the aggregator still serves a fully
// simulated dataset.
type Aggregator struct {
	resolver  *location.Resolver
	weather   *WeatherService
	tide      *TideService
	marine    *MarineService
	pollution *PollutionService
	repo      domain.ObservationRepository
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics

	wgBg sync.WaitGroup // tracks background persistence goroutines for graceful shutdown
}

// NewAggregator creates the aggregation orchestrator.
func NewAggregator(
	resolver *location.Resolver,
	weather *WeatherService,
	tide *TideService,
	marine *MarineService,
	pollution *PollutionService,
	repo domain.ObservationRepository,
	clock clockwork.Clock,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Aggregator {
	return &Aggregator{
		resolver:  resolver,
		weather:   weather,
		tide:      tide,
		marine:    marine,
		pollution: pollution,
		repo:      repo,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
	}
}

// WaitBackground blocks until all background save goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (a *Aggregator) WaitBackground() {
	a.wgBg.Wait()
}

// Aggregate builds a comprehensive dataset for the input. It never fails:
// the adapters degrade to simulation individually, and an outer recovery
// layer covers everything else.
func (a *Aggregator) Aggregate(ctx context.Context, input string) (data domain.ComprehensiveData) {
	loc := a.resolver.Resolve(input)

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("aggregation panicked, serving simulated dataset", "input", input, "panic", r)
			data = a.simulatedDataset(loc)
		}
	}()

	var (
		weather    domain.WeatherObservation
		tide       domain.TideObservation
		marine     domain.MarineObservation
		pollution  domain.PollutionObservation
		provenance domain.Provenance
		wg         sync.WaitGroup
	)

	// The four fetches are independent; running them concurrently bounds
	// latency to the slowest single adapter.
	wg.Add(4)
	go func() {
		defer wg.Done()
		weather, provenance.Weather = a.weather.Fetch(ctx, loc)
	}()
	go func() {
		defer wg.Done()
		tide, provenance.Tide = a.tide.Fetch(ctx, loc)
	}()
	go func() {
		defer wg.Done()
		marine, provenance.Marine = a.marine.Fetch(ctx, loc)
	}()
	go func() {
		defer wg.Done()
		pollution, provenance.Pollution = a.pollution.Fetch(ctx, loc)
	}()
	wg.Wait()

	a.metrics.AggregationRequests.Inc()

	data = domain.ComprehensiveData{
		Timestamp:  a.clock.Now().UTC(),
		Location:   loc,
		Weather:    weather,
		Tide:       tide,
		Marine:     marine,
		Pollution:  pollution,
		Provenance: provenance,
		Source:     domain.SourceUnified,
	}

	a.persistAsync(data)

	return data
}

// persistAsync saves the weather/tide subset in the background (tracked for
// graceful shutdown). Persistence failures are logged, never surfaced.
func (a *Aggregator) persistAsync(data domain.ComprehensiveData) {
	a.wgBg.Add(1)
	go func() {
		defer a.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := a.repo.SaveWeather(bgCtx, data.Weather); err != nil {
			a.logger.Error("failed to save weather observation", "error", err)
		}
		if err := a.repo.SaveTide(bgCtx, data.Tide); err != nil {
			a.logger.Error("failed to save tide observation", "error", err)
		}
	}()
}

// simulatedDataset is the outer fallback: every source simulated, all
// provenance marked fallback.
func (a *Aggregator) simulatedDataset(loc domain.Location) domain.ComprehensiveData {
	return domain.ComprehensiveData{
		Timestamp: a.clock.Now().UTC(),
		Location:  loc,
		Weather:   a.weather.simulate(loc),
		Tide:      a.tide.simulate(loc),
		Marine:    a.marine.simulate(loc),
		Pollution: a.pollution.simulate(loc),
		Provenance: domain.Provenance{
			Weather:   domain.ProvenanceFallback,
			Tide:      domain.ProvenanceFallback,
			Marine:    domain.ProvenanceFallback,
			Pollution: domain.ProvenanceFallback,
		},
		Source: domain.SourceSimulation,
	}
}
