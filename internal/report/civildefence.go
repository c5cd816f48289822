package report

import (
	"fmt"

	"github.com/coastwatch/backend/internal/domain"
)

type responseTeam struct {
	Personnel int      `json:"personnel"`
	Equipment []string `json:"equipment"`
	Deployed  []string `json:"deployed_for"` // emergency types this team mobilizes for
}

var responseTeams = map[string]responseTeam{
	"search_and_rescue": {
		Personnel: 24,
		Equipment: []string{"rescue boats", "life buoys", "thermal cameras"},
		Deployed:  []string{"cyclone", "flooding", "storm_surge"},
	},
	"medical": {
		Personnel: 16,
		Equipment: []string{"ambulances", "field triage kits", "mobile clinic"},
		Deployed:  []string{"cyclone", "flooding", "storm_surge", "pollution"},
	},
	"engineering": {
		Personnel: 20,
		Equipment: []string{"pumps", "sandbags", "heavy machinery"},
		Deployed:  []string{"flooding", "storm_surge"},
	},
	"hazmat": {
		Personnel: 10,
		Equipment: []string{"containment booms", "protective suits", "sampling kits"},
		Deployed:  []string{"pollution"},
	},
}

type responsePhase struct {
	Phase     string `json:"phase"`
	Window    string `json:"window"`
	Objective string `json:"objective"`
}

// ResponsePlan is the civil-defence coordination output for one emergency.
type ResponsePlan struct {
	EmergencyType  string                  `json:"emergency_type"`
	Severity       string                  `json:"severity"`
	Location       string                  `json:"location"`
	Teams          map[string]responseTeam `json:"teams"`
	Phases         []responsePhase         `json:"phases"`
	EvacuationPlan []string                `json:"evacuation_plan"`
}

var validSeverities = map[string]bool{
	domain.SeverityLow:      true,
	domain.SeverityMedium:   true,
	domain.SeverityHigh:     true,
	domain.SeverityCritical: true,
}

// CoordinateResponse assembles the civil-defence plan for the emergency
// type and severity at a location.
func CoordinateResponse(emergencyType, severity string, loc domain.Location) (*ResponsePlan, error) {
	if _, ok := emergencyProtocols[emergencyType]; !ok {
		return nil, fmt.Errorf("%w: emergency type %q", ErrUnknownKey, emergencyType)
	}
	if !validSeverities[severity] {
		return nil, fmt.Errorf("%w: severity %q", ErrUnknownKey, severity)
	}

	teams := make(map[string]responseTeam)
	for name, team := range responseTeams {
		for _, et := range team.Deployed {
			if et == emergencyType {
				teams[name] = team
				break
			}
		}
	}

	return &ResponsePlan{
		EmergencyType:  emergencyType,
		Severity:       severity,
		Location:       loc.Name,
		Teams:          teams,
		Phases:         responsePhases(severity),
		EvacuationPlan: evacuationPlan(emergencyType, severity),
	}, nil
}

func responsePhases(severity string) []responsePhase {
	phases := []responsePhase{
		{Phase: "alert", Window: "0-1h", Objective: "Notify teams and verify conditions"},
		{Phase: "mobilization", Window: "1-3h", Objective: "Stage personnel and equipment"},
		{Phase: "response", Window: "3-12h", Objective: "Execute protection and rescue operations"},
	}
	if severity == domain.SeverityHigh || severity == domain.SeverityCritical {
		phases = append(phases, responsePhase{
			Phase: "sustained_operations", Window: "12-72h", Objective: "Rotate crews and maintain operations until stand-down",
		})
	}
	return phases
}

func evacuationPlan(emergencyType, severity string) []string {
	if severity == domain.SeverityLow {
		return []string{"No evacuation required; keep residents informed"}
	}
	plan := []string{
		"Open designated coastal shelters",
		"Broadcast evacuation routes on local channels",
	}
	if emergencyType == "storm_surge" || emergencyType == "flooding" {
		plan = append(plan, "Prioritize zones below 5 m elevation")
	}
	if severity == domain.SeverityCritical {
		plan = append(plan, "Mandatory evacuation of all surge-exposed districts")
	}
	return plan
}
