package service

import (
	"io"
	"log/slog"
	"time"

	"github.com/coastwatch/backend/internal/domain"
)

// Fixed instants used across the adapter tests. UTC hour drives every
// simulation band, so each constant sits inside a specific band.
var (
	noonUTC     = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) // day / afternoon wind / no rush hour
	nightUTC    = time.Date(2025, 6, 15, 2, 0, 0, 0, time.UTC)  // night / calm wind
	rushHourUTC = time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)  // morning rush window
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tropicalLocation() domain.Location {
	return domain.Location{
		ID: "mumbai", Name: "Mumbai, India",
		Latitude: 19.0760, Longitude: 72.8777,
		Country: "India", Timezone: "IST",
	}
}

func polarLocation() domain.Location {
	return domain.Location{
		Name: "Longyearbyen", Latitude: 78.2232, Longitude: 15.6267,
		Country: "Norway", Timezone: "CET",
	}
}
