package report

import (
	"fmt"

	"github.com/coastwatch/backend/internal/domain"
)

// StakeholderType enumerates the disaster-management audiences.
type StakeholderType string

const (
	StakeholderEmergencyResponder StakeholderType = "emergency_responder"
	StakeholderGovernmentOfficial StakeholderType = "government_official"
	StakeholderCommunityLeader    StakeholderType = "community_leader"
	StakeholderMedia              StakeholderType = "media"
)

// Emergency levels, lowest to highest.
const (
	LevelAdvisory  = "advisory"
	LevelWatch     = "watch"
	LevelWarning   = "warning"
	LevelEmergency = "emergency"
)

type stakeholderConfig struct {
	Channel        string   `json:"channel"`
	ResponseWindow string   `json:"response_window"`
	Priorities     []string `json:"priorities"`
}

var stakeholderConfigs = map[StakeholderType]stakeholderConfig{
	StakeholderEmergencyResponder: {
		Channel:        "radio_dispatch",
		ResponseWindow: "15 minutes",
		Priorities:     []string{"life_safety", "search_and_rescue", "medical_response"},
	},
	StakeholderGovernmentOfficial: {
		Channel:        "official_bulletin",
		ResponseWindow: "1 hour",
		Priorities:     []string{"resource_allocation", "inter_agency_coordination", "public_communication"},
	},
	StakeholderCommunityLeader: {
		Channel:        "community_network",
		ResponseWindow: "2 hours",
		Priorities:     []string{"local_notification", "vulnerable_residents", "shelter_readiness"},
	},
	StakeholderMedia: {
		Channel:        "press_release",
		ResponseWindow: "30 minutes",
		Priorities:     []string{"public_awareness", "accurate_reporting", "official_guidance"},
	},
}

type emergencyProtocol struct {
	ActivationCriteria string   `json:"activation_criteria"`
	ImmediateActions   []string `json:"immediate_actions"`
	Resources          []string `json:"resources"`
}

var emergencyProtocols = map[string]emergencyProtocol{
	"cyclone": {
		ActivationCriteria: "Sustained winds above 17 m/s or official cyclone advisory",
		ImmediateActions:   []string{"Activate emergency operations center", "Issue evacuation advisories for exposed coastline", "Pre-position rescue assets inland"},
		Resources:          []string{"search_and_rescue_teams", "emergency_shelters", "medical_units"},
	},
	"flooding": {
		ActivationCriteria: "Tide above 2.5 m combined with onshore winds or heavy rainfall",
		ImmediateActions:   []string{"Warn low-lying neighborhoods", "Deploy pumps and sandbags", "Close vulnerable coastal roads"},
		Resources:          []string{"flood_barriers", "evacuation_transport", "relief_supplies"},
	},
	"storm_surge": {
		ActivationCriteria: "Predicted surge above local datum during high tide window",
		ImmediateActions:   []string{"Evacuate surge zones", "Secure ports and moorings", "Stage high-water rescue vehicles"},
		Resources:          []string{"high_water_vehicles", "coastal_barriers", "emergency_shelters"},
	},
	"pollution": {
		ActivationCriteria: "Water quality classified poor or confirmed dumping incident",
		ImmediateActions:   []string{"Close affected beaches", "Sample and trace contamination source", "Notify public health authorities"},
		Resources:          []string{"hazmat_teams", "water_testing_labs", "public_notices"},
	},
}

// StakeholderAlert is the disaster-management report for one audience.
type StakeholderAlert struct {
	Stakeholder    StakeholderType   `json:"stakeholder"`
	EmergencyType  string            `json:"emergency_type"`
	EmergencyLevel string            `json:"emergency_level"`
	Location       string            `json:"location"`
	Headline       string            `json:"headline"`
	Config         stakeholderConfig `json:"config"`
	Protocol       emergencyProtocol `json:"protocol"`
	Conditions     domain.Conditions `json:"conditions"`
}

// GenerateStakeholderAlert builds the templated disaster-management report
// for the given stakeholder and emergency type.
func GenerateStakeholderAlert(stakeholder StakeholderType, emergencyType string, data domain.ComprehensiveData) (*StakeholderAlert, error) {
	config, ok := stakeholderConfigs[stakeholder]
	if !ok {
		return nil, fmt.Errorf("%w: stakeholder %q", ErrUnknownKey, stakeholder)
	}
	protocol, ok := emergencyProtocols[emergencyType]
	if !ok {
		return nil, fmt.Errorf("%w: emergency type %q", ErrUnknownKey, emergencyType)
	}

	cond := data.Flatten()
	level := assessEmergencyLevel(cond)

	return &StakeholderAlert{
		Stakeholder:    stakeholder,
		EmergencyType:  emergencyType,
		EmergencyLevel: level,
		Location:       data.Location.Name,
		Headline:       fmt.Sprintf("%s %s for %s", emergencyType, level, data.Location.Name),
		Config:         config,
		Protocol:       protocol,
		Conditions:     cond,
	}, nil
}

// assessEmergencyLevel grades current conditions into an emergency level.
func assessEmergencyLevel(cond domain.Conditions) string {
	switch {
	case cond.WindSpeed >= 25 || cond.WaveHeight >= 4:
		return LevelEmergency
	case cond.WindSpeed >= 18 || cond.WaveHeight >= 3 || cond.TideHeight >= 2.8:
		return LevelWarning
	case cond.WindSpeed >= 12 || cond.WaveHeight >= 2 || cond.PollutionLevel == "high":
		return LevelWatch
	default:
		return LevelAdvisory
	}
}
