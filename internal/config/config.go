package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all service settings, populated from environment variables.
// Provider credentials are optional: a missing key routes the matching
// source adapter to its simulation fallback instead of failing requests.
type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string

	OpenWeatherAPIKey string
	NOAAEnabled       bool
	StormglassAPIKey  string
	WAQIAPIKey        string

	ClassifierURL string

	// DemoAlertChance is the probability of injecting one synthetic
	// flooding_risk alert per derivation. 0 disables the injection.
	DemoAlertChance float64

	// SimulateDumpingFlag controls whether simulated pollution data
	// randomizes illegal_dumping_detected. When false the flag stays false.
	SimulateDumpingFlag bool
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        envOrDefault("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),

		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		NOAAEnabled:       envBool("NOAA_ENABLED", os.Getenv("NOAA_API_KEY") != ""),
		StormglassAPIKey:  os.Getenv("STORMGLASS_API_KEY"),
		WAQIAPIKey:        os.Getenv("WAQI_API_KEY"),

		ClassifierURL: envOrDefault("CLASSIFIER_URL", "http://localhost:8000"),

		DemoAlertChance:     0.3,
		SimulateDumpingFlag: envBool("SIMULATE_DUMPING_FLAG", true),
	}

	if s := os.Getenv("DEMO_ALERT_CHANCE"); s != "" {
		chance, err := strconv.ParseFloat(s, 64)
		if err != nil || chance < 0 || chance > 1 {
			return nil, fmt.Errorf("config: DEMO_ALERT_CHANCE must be a float in [0,1], got %q", s)
		}
		cfg.DemoAlertChance = chance
	}

	return cfg, nil
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envBool(key string, defaultValue bool) bool {
	switch os.Getenv(key) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}
