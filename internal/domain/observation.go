package domain

import "time"

// Source labels recorded on observations.
const (
	SourceOpenWeather = "openweather_api"
	SourceNOAA        = "noaa_api"
	SourceStormglass  = "stormglass_api"
	SourceWAQI        = "waqi_api"
	SourceSimulation  = "realistic_simulation"
	SourceUnified     = "unified_data_service"
)

// Per-source provenance values, distinct from the Source label on each
// observation: "real" means the external provider answered, "fallback" means
// the local simulator produced the observation.
const (
	ProvenanceReal     = "real"
	ProvenanceFallback = "fallback"
)

// Provenance records the origin of each observation in a dataset.
type Provenance struct {
	Weather   string `json:"weather"`
	Tide      string `json:"tide"`
	Marine    string `json:"marine"`
	Pollution string `json:"pollution"`
}

// WeatherObservation is one weather reading for one location.
type WeatherObservation struct {
	Timestamp     time.Time `json:"timestamp"`
	Location      string    `json:"location"`
	CityName      string    `json:"city_name"`
	Country       string    `json:"country"`
	Timezone      string    `json:"timezone"`
	Temperature   float64   `json:"temperature"`
	Humidity      int       `json:"humidity"`
	WindSpeed     float64   `json:"wind_speed"`
	WindDirection int       `json:"wind_direction"`
	Pressure      float64   `json:"pressure"`
	Description   string    `json:"description"`
	Source        string    `json:"source"`
}

// TideObservation is one tide reading for one location.
type TideObservation struct {
	Timestamp  time.Time `json:"timestamp"`
	Location   string    `json:"location"`
	CityName   string    `json:"city_name"`
	Country    string    `json:"country"`
	Timezone   string    `json:"timezone"`
	TideHeight float64   `json:"tide_height"`
	TideType   string    `json:"tide_type"` // "rising", "falling", "high", "low"
	Source     string    `json:"source"`
}

// MarineObservation is one sea-state reading for one location.
type MarineObservation struct {
	Timestamp        time.Time `json:"timestamp"`
	Location         string    `json:"location"`
	CityName         string    `json:"city_name"`
	Country          string    `json:"country"`
	Timezone         string    `json:"timezone"`
	WaveHeight       float64   `json:"wave_height"`
	WavePeriod       float64   `json:"wave_period"`
	CurrentSpeed     float64   `json:"current_speed"`
	CurrentDirection float64   `json:"current_direction"`
	SeaSurfaceTemp   float64   `json:"sea_surface_temp"`
	SeaCondition     string    `json:"sea_condition"`
	Source           string    `json:"source"`
}

// MonitoringData holds the raw water sensor block of a pollution observation.
type MonitoringData struct {
	Turbidity       float64 `json:"turbidity"`
	DissolvedOxygen float64 `json:"dissolved_oxygen"`
	PH              float64 `json:"ph"`
	BacteriaCount   int     `json:"bacteria_count"`
}

// PollutionObservation is one water-quality reading for one location.
type PollutionObservation struct {
	Timestamp              time.Time      `json:"timestamp"`
	Location               string         `json:"location"`
	CityName               string         `json:"city_name"`
	Country                string         `json:"country"`
	Timezone               string         `json:"timezone"`
	WaterQuality           string         `json:"water_quality"`   // "good", "moderate", "poor"
	PollutionLevel         string         `json:"pollution_level"` // "low", "moderate", "high"
	Monitoring             MonitoringData `json:"monitoring_data"`
	IllegalDumpingDetected bool           `json:"illegal_dumping_detected"`
	Source                 string         `json:"source"`
}

// ComprehensiveData is the merged dataset assembled once per request.
type ComprehensiveData struct {
	Timestamp  time.Time            `json:"timestamp"`
	Location   Location             `json:"location"`
	Weather    WeatherObservation   `json:"weather"`
	Tide       TideObservation      `json:"tide"`
	Marine     MarineObservation    `json:"marine"`
	Pollution  PollutionObservation `json:"pollution"`
	Provenance Provenance           `json:"provenance"`
	Source     string               `json:"source"`
}

// Conditions is the flat, explicitly typed record handed to the threat
// classifier. Named fields per metric avoid the key collisions a merged
// map would have across sources.
type Conditions struct {
	Location       string  `json:"location"`
	Temperature    float64 `json:"temperature"`
	Humidity       int     `json:"humidity"`
	WindSpeed      float64 `json:"wind_speed"`
	WindDirection  int     `json:"wind_direction"`
	Pressure       float64 `json:"pressure"`
	TideHeight     float64 `json:"tide_height"`
	TideType       string  `json:"tide_type"`
	WaveHeight     float64 `json:"wave_height"`
	WavePeriod     float64 `json:"wave_period"`
	CurrentSpeed   float64 `json:"current_speed"`
	SeaSurfaceTemp float64 `json:"sea_surface_temp"`
	WaterQuality   string  `json:"water_quality"`
	PollutionLevel string  `json:"pollution_level"`
	BacteriaCount  int     `json:"bacteria_count"`
	IllegalDumping bool    `json:"illegal_dumping_detected"`
}

// Flatten merges the four observations into the classifier input record.
func (d ComprehensiveData) Flatten() Conditions {
	return Conditions{
		Location:       d.Location.Coordinates(),
		Temperature:    d.Weather.Temperature,
		Humidity:       d.Weather.Humidity,
		WindSpeed:      d.Weather.WindSpeed,
		WindDirection:  d.Weather.WindDirection,
		Pressure:       d.Weather.Pressure,
		TideHeight:     d.Tide.TideHeight,
		TideType:       d.Tide.TideType,
		WaveHeight:     d.Marine.WaveHeight,
		WavePeriod:     d.Marine.WavePeriod,
		CurrentSpeed:   d.Marine.CurrentSpeed,
		SeaSurfaceTemp: d.Marine.SeaSurfaceTemp,
		WaterQuality:   d.Pollution.WaterQuality,
		PollutionLevel: d.Pollution.PollutionLevel,
		BacteriaCount:  d.Pollution.Monitoring.BacteriaCount,
		IllegalDumping: d.Pollution.IllegalDumpingDetected,
	}
}
