package report

import (
	"fmt"

	"github.com/coastwatch/backend/internal/domain"
)

// Fishing zone statuses, safest to least safe.
const (
	ZoneSafe       = "safe"
	ZoneCaution    = "caution"
	ZoneUnsafe     = "unsafe"
	ZoneProhibited = "prohibited"
)

type fishingZone struct {
	Name         string  `json:"name"`
	MaxDistance  float64 `json:"max_distance_km"`
	MaxWindSafe  float64 `json:"max_wind_safe"`  // m/s for small craft in this zone
	MaxWaveSafe  float64 `json:"max_wave_safe"`  // meters
	TypicalCatch string  `json:"typical_catch"`
}

var fishingZones = []fishingZone{
	{Name: "nearshore", MaxDistance: 5, MaxWindSafe: 12, MaxWaveSafe: 1.5, TypicalCatch: "mackerel, sardines"},
	{Name: "offshore", MaxDistance: 20, MaxWindSafe: 10, MaxWaveSafe: 2.0, TypicalCatch: "tuna, kingfish"},
	{Name: "deep_sea", MaxDistance: 50, MaxWindSafe: 8, MaxWaveSafe: 2.5, TypicalCatch: "snapper, grouper"},
}

// ZoneAssessment is the safety result for one fishing zone.
type ZoneAssessment struct {
	Zone     fishingZone `json:"zone"`
	Status   string      `json:"status"`
	Guidance string      `json:"guidance"`
}

// FishingSafetyReport is the fisherfolk-facing daily safety summary.
type FishingSafetyReport struct {
	Location        string            `json:"location"`
	OverallStatus   string            `json:"overall_status"`
	Zones           []ZoneAssessment  `json:"zones"`
	SafetyChecklist []string          `json:"safety_checklist"`
	Conditions      domain.Conditions `json:"conditions"`
}

// GenerateFishingSafetyReport assesses each fishing zone against current
// wind and wave conditions.
func GenerateFishingSafetyReport(data domain.ComprehensiveData) *FishingSafetyReport {
	cond := data.Flatten()

	zones := make([]ZoneAssessment, 0, len(fishingZones))
	overall := ZoneSafe
	for _, zone := range fishingZones {
		status := assessZone(zone, cond)
		zones = append(zones, ZoneAssessment{
			Zone:     zone,
			Status:   status,
			Guidance: zoneGuidance(zone.Name, status),
		})
		if statusRank(status) > statusRank(overall) {
			overall = status
		}
	}

	return &FishingSafetyReport{
		Location:        data.Location.Name,
		OverallStatus:   overall,
		Zones:           zones,
		SafetyChecklist: safetyChecklist(overall),
		Conditions:      cond,
	}
}

func assessZone(zone fishingZone, cond domain.Conditions) string {
	if cond.PollutionLevel == "high" {
		return ZoneProhibited
	}
	switch {
	case cond.WindSpeed > zone.MaxWindSafe*1.5 || cond.WaveHeight > zone.MaxWaveSafe*1.5:
		return ZoneUnsafe
	case cond.WindSpeed > zone.MaxWindSafe || cond.WaveHeight > zone.MaxWaveSafe:
		return ZoneCaution
	default:
		return ZoneSafe
	}
}

func statusRank(status string) int {
	switch status {
	case ZoneSafe:
		return 0
	case ZoneCaution:
		return 1
	case ZoneUnsafe:
		return 2
	default:
		return 3
	}
}

func zoneGuidance(zoneName, status string) string {
	switch status {
	case ZoneSafe:
		return fmt.Sprintf("Normal operations permitted in the %s zone.", zoneName)
	case ZoneCaution:
		return fmt.Sprintf("Experienced crews only in the %s zone; return before conditions worsen.", zoneName)
	case ZoneUnsafe:
		return fmt.Sprintf("Do not enter the %s zone; conditions exceed safe operating limits.", zoneName)
	default:
		return fmt.Sprintf("The %s zone is closed due to a water quality hazard.", zoneName)
	}
}

func safetyChecklist(overall string) []string {
	checklist := []string{
		"Carry life jackets for every crew member",
		"Verify radio or phone contact before departure",
		"File a float plan with the harbor office",
	}
	if overall != ZoneSafe {
		checklist = append(checklist,
			"Stay within sight of shore",
			"Monitor weather broadcasts hourly",
		)
	}
	if overall == ZoneUnsafe || overall == ZoneProhibited {
		checklist = append(checklist, "Suspend fishing operations until conditions improve")
	}
	return checklist
}
