package report

import (
	"fmt"

	"github.com/coastwatch/backend/internal/domain"
	"github.com/coastwatch/backend/pkg/utils"
)

// HabitatType enumerates the protected coastal habitat kinds.
type HabitatType string

const (
	HabitatMangrove  HabitatType = "mangrove"
	HabitatCoralReef HabitatType = "coral_reef"
	HabitatSeagrass  HabitatType = "seagrass"
	HabitatSaltMarsh HabitatType = "salt_marsh"
)

// Habitat health statuses.
const (
	HealthHealthy  = "healthy"
	HealthStressed = "stressed"
	HealthDegraded = "degraded"
	HealthCritical = "critical"
)

type habitatProfile struct {
	OptimalTempC    float64  `json:"optimal_temp_c"`
	TempToleranceC  float64  `json:"temp_tolerance_c"`
	WaveSensitivity float64  `json:"wave_sensitivity"` // score penalty per meter of wave height
	KeySpecies      []string `json:"key_species"`
	PrimaryThreats  []string `json:"primary_threats"`
}

var habitatProfiles = map[HabitatType]habitatProfile{
	HabitatMangrove: {
		OptimalTempC:    27,
		TempToleranceC:  6,
		WaveSensitivity: 5,
		KeySpecies:      []string{"Rhizophora", "Avicennia", "mudskippers"},
		PrimaryThreats:  []string{"coastal_development", "pollution", "sea_level_rise"},
	},
	HabitatCoralReef: {
		OptimalTempC:    26,
		TempToleranceC:  2,
		WaveSensitivity: 8,
		KeySpecies:      []string{"Acropora", "Porites", "reef fish"},
		PrimaryThreats:  []string{"bleaching", "acidification", "destructive_fishing"},
	},
	HabitatSeagrass: {
		OptimalTempC:    25,
		TempToleranceC:  5,
		WaveSensitivity: 10,
		KeySpecies:      []string{"Thalassia", "Halophila", "dugongs"},
		PrimaryThreats:  []string{"turbidity", "anchor_damage", "nutrient_runoff"},
	},
	HabitatSaltMarsh: {
		OptimalTempC:    20,
		TempToleranceC:  8,
		WaveSensitivity: 4,
		KeySpecies:      []string{"Spartina", "Salicornia", "wading birds"},
		PrimaryThreats:  []string{"land_reclamation", "invasive_species", "pollution"},
	},
}

// HabitatReport is the habitat-protection assessment for one habitat kind
// at one location.
type HabitatReport struct {
	Habitat             HabitatType    `json:"habitat"`
	Location            string         `json:"location"`
	HealthScore         float64        `json:"health_score"` // 0-100
	HealthStatus        string         `json:"health_status"`
	Profile             habitatProfile `json:"profile"`
	ActiveThreats       []string       `json:"active_threats"`
	Recommendations     []string       `json:"recommendations"`
	MonitoringFrequency string         `json:"monitoring_frequency"`
}

// GenerateHabitatReport scores habitat health from current conditions and
// assembles the conservation report.
func GenerateHabitatReport(habitat HabitatType, data domain.ComprehensiveData) (*HabitatReport, error) {
	profile, ok := habitatProfiles[habitat]
	if !ok {
		return nil, fmt.Errorf("%w: habitat type %q", ErrUnknownKey, habitat)
	}

	cond := data.Flatten()
	score := healthScore(profile, cond)
	status := healthStatus(score)

	return &HabitatReport{
		Habitat:             habitat,
		Location:            data.Location.Name,
		HealthScore:         utils.RoundTo(score, 1),
		HealthStatus:        status,
		Profile:             profile,
		ActiveThreats:       activeThreats(cond),
		Recommendations:     recommendations(status),
		MonitoringFrequency: monitoringFrequency(status),
	}, nil
}

// healthScore starts at 100 and deducts for thermal stress, wave energy,
// and water quality.
func healthScore(profile habitatProfile, cond domain.Conditions) float64 {
	score := 100.0

	tempStress := cond.SeaSurfaceTemp - profile.OptimalTempC
	if tempStress < 0 {
		tempStress = -tempStress
	}
	if tempStress > profile.TempToleranceC {
		score -= (tempStress - profile.TempToleranceC) * 8
	}

	score -= cond.WaveHeight * profile.WaveSensitivity

	switch cond.PollutionLevel {
	case "moderate":
		score -= 15
	case "high":
		score -= 35
	}
	if cond.IllegalDumping {
		score -= 10
	}

	return utils.Clamp(score, 0, 100)
}

func healthStatus(score float64) string {
	switch {
	case score >= 75:
		return HealthHealthy
	case score >= 50:
		return HealthStressed
	case score >= 25:
		return HealthDegraded
	default:
		return HealthCritical
	}
}

func activeThreats(cond domain.Conditions) []string {
	var threats []string
	if cond.PollutionLevel != "low" {
		threats = append(threats, "water_pollution")
	}
	if cond.IllegalDumping {
		threats = append(threats, "illegal_dumping")
	}
	if cond.WaveHeight >= 2.5 {
		threats = append(threats, "storm_damage")
	}
	if cond.SeaSurfaceTemp > 29 {
		threats = append(threats, "thermal_stress")
	}
	return threats
}

func recommendations(status string) []string {
	switch status {
	case HealthHealthy:
		return []string{"Continue routine monitoring", "Maintain existing protection boundaries"}
	case HealthStressed:
		return []string{"Increase monitoring frequency", "Reduce nearby pollution discharge", "Restrict high-impact activities"}
	case HealthDegraded:
		return []string{"Launch restoration program", "Enforce no-take protections", "Track recovery quarterly"}
	default:
		return []string{"Declare conservation emergency", "Suspend all extractive activity", "Begin intensive rehabilitation"}
	}
}

func monitoringFrequency(status string) string {
	switch status {
	case HealthHealthy:
		return "monthly"
	case HealthStressed:
		return "weekly"
	default:
		return "daily"
	}
}
