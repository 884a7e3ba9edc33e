package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
// Note: This is a stateless configuration - patterns live in memory and in
// exported MIDI files, so no database settings are needed
type Config struct {
	// Environment
	Environment string
	Port        string

	// Observability
	SentryDSN string // Sentry DSN for error tracking

	// Playback defaults
	DefaultBPM       float64 // Transport tempo when no host clock dictates one
	StrumDelaySec    float64 // Inter-onset spacing for strummed chords
	HumanizeTiming   float64 // 0..1 timing jitter amount
	HumanizeDynamics float64 // 0..1 velocity swing amount
	AutoVoiceLead    bool    // Re-voice chord sequences before rendering
}

func Load() *Config {
	return &Config{
		Environment:      getEnv("ENVIRONMENT", "development"),
		Port:             getEnv("PORT", "8080"),
		SentryDSN:        getEnv("SENTRY_DSN", ""),
		DefaultBPM:       getEnvFloat("DEFAULT_BPM", 120),
		StrumDelaySec:    getEnvFloat("STRUM_DELAY_SEC", 0.040),
		HumanizeTiming:   getEnvFloat("HUMANIZE_TIMING", 0),
		HumanizeDynamics: getEnvFloat("HUMANIZE_DYNAMICS", 0),
		AutoVoiceLead:    getEnv("AUTO_VOICE_LEAD", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

// IsProduction returns true when running with the production environment tag
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
