package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Vision (label model inference)
	VisionAPIKey     string
	VisionAPIBaseURL string

	// Reverse geocoding
	GeocodeAPIBaseURL string

	// Push notifications
	PushAPIKey     string
	PushAPIBaseURL string

	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string

	// Database
	DatabaseURL string

	// Pipeline
	LocationTimeout time.Duration

	// Server
	Port        string
	Environment string
	BaseURL     string
}

func Load() (*Config, error) {
	cfg := &Config{
		VisionAPIKey:     getEnv("VISION_API_KEY", ""),
		VisionAPIBaseURL: getEnv("VISION_API_BASE_URL", "https://vision.googleapis.com/v1/"),

		GeocodeAPIBaseURL: getEnv("GEOCODE_API_BASE_URL", "https://nominatim.openstreetmap.org/"),

		PushAPIKey:     getEnv("PUSH_API_KEY", ""),
		PushAPIBaseURL: getEnv("PUSH_API_BASE_URL", "https://fcm.googleapis.com/fcm/"),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "findit-images"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		LocationTimeout: time.Duration(getEnvInt("LOCATION_TIMEOUT_SECONDS", 15)) * time.Second,

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.VisionAPIKey == "" {
		return fmt.Errorf("VISION_API_KEY is required")
	}
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	if c.LocationTimeout <= 0 {
		return fmt.Errorf("LOCATION_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
