package report

import (
	"fmt"

	"github.com/coastwatch/backend/internal/domain"
)

// Sector enumerates the coastal-government policy areas.
type Sector string

const (
	SectorEmergencyPreparedness Sector = "emergency_preparedness"
	SectorInfrastructure        Sector = "infrastructure"
	SectorEnvironment           Sector = "environmental_protection"
	SectorEconomicDevelopment   Sector = "economic_development"
)

type policyArea struct {
	Objectives []string `json:"objectives"`
	Programs   []string `json:"programs"`
	Horizon    string   `json:"horizon"`
}

var policyFramework = map[Sector]policyArea{
	SectorEmergencyPreparedness: {
		Objectives: []string{"Early warning coverage for all coastal wards", "Annual evacuation drills"},
		Programs:   []string{"siren_network_upgrade", "community_responder_training"},
		Horizon:    "1-2 years",
	},
	SectorInfrastructure: {
		Objectives: []string{"Harden critical assets against surge", "Maintain drainage capacity"},
		Programs:   []string{"seawall_reinforcement", "storm_drain_modernization"},
		Horizon:    "3-5 years",
	},
	SectorEnvironment: {
		Objectives: []string{"Restore degraded habitats", "Eliminate untreated discharge"},
		Programs:   []string{"mangrove_replanting", "outfall_monitoring"},
		Horizon:    "2-4 years",
	},
	SectorEconomicDevelopment: {
		Objectives: []string{"Protect fishing livelihoods", "Climate-resilient tourism"},
		Programs:   []string{"harbor_modernization", "sustainable_tourism_zoning"},
		Horizon:    "3-5 years",
	},
}

// PolicyBrief is the coastal-government report for one sector.
type PolicyBrief struct {
	Sector           Sector     `json:"sector"`
	Location         string     `json:"location"`
	SituationSummary string     `json:"situation_summary"`
	Area             policyArea `json:"area"`
	PriorityActions  []string   `json:"priority_actions"`
	RiskDrivers      []string   `json:"risk_drivers"`
}

// GeneratePolicyBrief builds a sector policy brief informed by current
// conditions at the location.
func GeneratePolicyBrief(sector Sector, data domain.ComprehensiveData) (*PolicyBrief, error) {
	area, ok := policyFramework[sector]
	if !ok {
		return nil, fmt.Errorf("%w: sector %q", ErrUnknownKey, sector)
	}

	cond := data.Flatten()
	drivers := riskDrivers(cond)

	return &PolicyBrief{
		Sector:           sector,
		Location:         data.Location.Name,
		SituationSummary: situationSummary(data.Location.Name, cond, drivers),
		Area:             area,
		PriorityActions:  priorityActions(sector, drivers),
		RiskDrivers:      drivers,
	}, nil
}

func riskDrivers(cond domain.Conditions) []string {
	var drivers []string
	if cond.WindSpeed >= 15 || cond.WaveHeight >= 2.5 {
		drivers = append(drivers, "severe_weather")
	}
	if cond.TideHeight >= 2.5 {
		drivers = append(drivers, "tidal_flooding")
	}
	if cond.PollutionLevel != "low" {
		drivers = append(drivers, "water_pollution")
	}
	if len(drivers) == 0 {
		drivers = append(drivers, "baseline")
	}
	return drivers
}

func situationSummary(name string, cond domain.Conditions, drivers []string) string {
	if len(drivers) == 1 && drivers[0] == "baseline" {
		return fmt.Sprintf("Conditions at %s are within normal ranges.", name)
	}
	return fmt.Sprintf("Conditions at %s show elevated risk: wind %.1f m/s, tide %.2f m, pollution %s.",
		name, cond.WindSpeed, cond.TideHeight, cond.PollutionLevel)
}

func priorityActions(sector Sector, drivers []string) []string {
	actions := []string{"Review sector budget allocation against current risk profile"}
	for _, d := range drivers {
		switch {
		case d == "severe_weather" && sector == SectorEmergencyPreparedness:
			actions = append(actions, "Place response teams on standby")
		case d == "tidal_flooding" && sector == SectorInfrastructure:
			actions = append(actions, "Inspect drainage and surge barriers this week")
		case d == "water_pollution" && sector == SectorEnvironment:
			actions = append(actions, "Expedite discharge source investigation")
		}
	}
	return actions
}
