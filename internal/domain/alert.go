package domain

import "time"

// Alert severities, lowest to highest.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Known alert types.
const (
	AlertHighWind     = "high_wind"
	AlertHighTide     = "high_tide"
	AlertStormRisk    = "storm_risk"
	AlertPollution    = "pollution"
	AlertRoughSeas    = "rough_seas"
	AlertFloodingRisk = "flooding_risk"
)

// AlertTypeDescriptions maps alert types to their short display text.
var AlertTypeDescriptions = map[string]string{
	AlertHighWind:     "Strong winds detected",
	AlertHighTide:     "High tide warning",
	AlertStormRisk:    "Storm conditions detected",
	AlertPollution:    "Water quality alert",
	AlertRoughSeas:    "Rough sea conditions",
	AlertFloodingRisk: "Potential flooding risk",
}

// Alert is one derived threat record. Deactivation is a soft state change;
// alerts are never deleted from the registry.
type Alert struct {
	ID          string    `json:"id"`
	AlertType   string    `json:"alert_type"`
	Severity    string    `json:"severity"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	TriggeredBy string    `json:"triggered_by"`
	Timestamp   time.Time `json:"timestamp"`
	Source      string    `json:"source"`
}

// Finding is one classifier result, converted to an Alert by the deriver.
type Finding struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Location    string `json:"location"`
	Description string `json:"description"`
}
