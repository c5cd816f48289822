package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coastwatch/backend/internal/domain"
	"github.com/coastwatch/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, aggregator *service.Aggregator, alertSvc *service.AlertService, repo domain.ObservationRepository) {
	handler := NewHandler(aggregator, alertSvc, repo)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	{
		api.Get("/", handler.Root)
		api.Get("/health", handler.HealthCheck)

		// Unified data aggregation
		api.Get("/data/:location", handler.GetData)
		api.Get("/locations", handler.GetLocations)

		// Alert registry
		api.Get("/alerts", handler.GetAlerts)
		api.Delete("/alerts/:id", handler.DeactivateAlert)

		// Stakeholder reports
		reports := api.Group("/reports")
		{
			reports.Get("/disaster-management/:location", handler.DisasterManagementReport)
			reports.Get("/habitat-protection/:location", handler.HabitatProtectionReport)
			reports.Get("/fisherfolk-safety/:location", handler.FisherfolkSafetyReport)
			reports.Get("/civil-defence/:location", handler.CivilDefenceReport)
			reports.Get("/coastal-government/:location", handler.CoastalGovernmentReport)
			reports.Get("/stakeholder-dashboard/:location", handler.StakeholderDashboard)
		}

		// Historical analytics
		analytics := api.Group("/analytics")
		{
			analytics.Get("/weather-history", handler.WeatherHistory)
			analytics.Get("/tide-history", handler.TideHistory)
		}
	}
}
