package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/coastwatch/backend/internal/domain"
	"github.com/coastwatch/backend/internal/location"
	"github.com/coastwatch/backend/internal/report"
	"github.com/coastwatch/backend/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	aggregator *service.Aggregator
	alertSvc   *service.AlertService
	repo       domain.ObservationRepository
}

// NewHandler creates a new handler
func NewHandler(aggregator *service.Aggregator, alertSvc *service.AlertService, repo domain.ObservationRepository) *Handler {
	return &Handler{
		aggregator: aggregator,
		alertSvc:   alertSvc,
		repo:       repo,
	}
}

// Root returns system information
func (h *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":     "Coastal Threat Monitoring API",
		"version":     "1.0.0",
		"status":      "operational",
		"description": "Global coastal monitoring and early warning system",
		"endpoints": fiber.Map{
			"data":      "/api/data/{location} - Comprehensive coastal data for a location",
			"locations": "/api/locations - Available coastal cities",
			"alerts":    "/api/alerts - Active alerts",
			"health":    "/api/health - System health check",
		},
	})
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	database := "operational"
	if err := h.repo.Health(c.Context()); err != nil {
		database = "unavailable"
	}

	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "coastwatch-backend",
		"version": "1.0.0",
		"components": fiber.Map{
			"data_service":  "operational",
			"alert_service": "operational",
			"database":      database,
		},
	})
}

// GetData aggregates comprehensive coastal data for any location
func (h *Handler) GetData(c *fiber.Ctx) error {
	ctx := c.Context()

	data := h.aggregator.Aggregate(ctx, c.Params("location"))
	alerts := h.alertSvc.DeriveAlerts(ctx, data)

	return c.JSON(fiber.Map{
		"status":           "success",
		"timestamp":        data.Timestamp,
		"location":         data.Location.Coordinates(),
		"city_name":        data.Location.Name,
		"country":          data.Location.Country,
		"timezone":         data.Location.Timezone,
		"data":             data,
		"alerts_generated": len(alerts),
		"source":           data.Source,
	})
}

// GetLocations returns the canonical coastal city catalog
func (h *Handler) GetLocations(c *fiber.Ctx) error {
	locations := location.Catalog()
	return c.JSON(fiber.Map{
		"status":       "success",
		"locations":    locations,
		"total_cities": len(locations),
	})
}

// GetAlerts returns currently active alerts
func (h *Handler) GetAlerts(c *fiber.Ctx) error {
	alerts := h.alertSvc.ActiveAlerts()
	return c.JSON(fiber.Map{
		"status":       "success",
		"alerts":       alerts,
		"total_alerts": len(alerts),
		"alert_types":  domain.AlertTypeDescriptions,
	})
}

// DeactivateAlert soft-disables an alert by id
func (h *Handler) DeactivateAlert(c *fiber.Ctx) error {
	id := c.Params("id")
	if !h.alertSvc.Deactivate(id) {
		return fiber.NewError(fiber.StatusNotFound, "Alert not found")
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Alert " + id + " deactivated successfully",
	})
}

// DisasterManagementReport returns the stakeholder alert report
func (h *Handler) DisasterManagementReport(c *fiber.Ctx) error {
	stakeholder := report.StakeholderType(c.Query("stakeholder_type", string(report.StakeholderEmergencyResponder)))
	emergencyType := c.Query("emergency_type", "flooding")

	data := h.aggregator.Aggregate(c.Context(), c.Params("location"))
	alert, err := report.GenerateStakeholderAlert(stakeholder, emergencyType, data)
	if err != nil {
		return reportError(err)
	}

	return c.JSON(fiber.Map{"status": "success", "report": alert})
}

// HabitatProtectionReport returns the habitat health assessment
func (h *Handler) HabitatProtectionReport(c *fiber.Ctx) error {
	habitat := report.HabitatType(c.Query("habitat_type", string(report.HabitatMangrove)))

	data := h.aggregator.Aggregate(c.Context(), c.Params("location"))
	rep, err := report.GenerateHabitatReport(habitat, data)
	if err != nil {
		return reportError(err)
	}

	return c.JSON(fiber.Map{"status": "success", "report": rep})
}

// FisherfolkSafetyReport returns the fishing zone safety summary
func (h *Handler) FisherfolkSafetyReport(c *fiber.Ctx) error {
	data := h.aggregator.Aggregate(c.Context(), c.Params("location"))
	rep := report.GenerateFishingSafetyReport(data)
	return c.JSON(fiber.Map{"status": "success", "report": rep})
}

// CivilDefenceReport returns the emergency response coordination plan
func (h *Handler) CivilDefenceReport(c *fiber.Ctx) error {
	emergencyType := c.Query("emergency_type", "flooding")
	severity := c.Query("severity", domain.SeverityMedium)

	data := h.aggregator.Aggregate(c.Context(), c.Params("location"))
	plan, err := report.CoordinateResponse(emergencyType, severity, data.Location)
	if err != nil {
		return reportError(err)
	}

	return c.JSON(fiber.Map{"status": "success", "report": plan})
}

// CoastalGovernmentReport returns the sector policy brief
func (h *Handler) CoastalGovernmentReport(c *fiber.Ctx) error {
	sector := report.Sector(c.Query("sector", string(report.SectorEmergencyPreparedness)))

	data := h.aggregator.Aggregate(c.Context(), c.Params("location"))
	brief, err := report.GeneratePolicyBrief(sector, data)
	if err != nil {
		return reportError(err)
	}

	return c.JSON(fiber.Map{"status": "success", "report": brief})
}

// StakeholderDashboard assembles every stakeholder view over one dataset
func (h *Handler) StakeholderDashboard(c *fiber.Ctx) error {
	data := h.aggregator.Aggregate(c.Context(), c.Params("location"))

	disaster, err := report.GenerateStakeholderAlert(report.StakeholderCommunityLeader, "flooding", data)
	if err != nil {
		return reportError(err)
	}
	habitat, err := report.GenerateHabitatReport(report.HabitatMangrove, data)
	if err != nil {
		return reportError(err)
	}
	policy, err := report.GeneratePolicyBrief(report.SectorEmergencyPreparedness, data)
	if err != nil {
		return reportError(err)
	}

	return c.JSON(fiber.Map{
		"status":              "success",
		"location":            data.Location.Name,
		"disaster_management": disaster,
		"habitat_protection":  habitat,
		"fisherfolk_safety":   report.GenerateFishingSafetyReport(data),
		"coastal_government":  policy,
	})
}

// WeatherHistory returns persisted weather observations within a time range
func (h *Handler) WeatherHistory(c *fiber.Ctx) error {
	from, to := historyRange(c)

	data, err := h.repo.RecentWeather(c.Context(), from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch weather history")
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   data,
		"count":  len(data),
	})
}

// TideHistory returns persisted tide observations within a time range
func (h *Handler) TideHistory(c *fiber.Ctx) error {
	from, to := historyRange(c)

	data, err := h.repo.RecentTide(c.Context(), from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch tide history")
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   data,
		"count":  len(data),
	})
}

func historyRange(c *fiber.Ctx) (time.Time, time.Time) {
	hours := c.QueryInt("hours", 24)
	if hours < 1 || hours > 720 { // max 30 days
		hours = 24
	}
	to := time.Now()
	return to.Add(-time.Duration(hours) * time.Hour), to
}

func reportError(err error) error {
	if errors.Is(err, report.ErrUnknownKey) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate report")
}
