/*
Package configs is responsible for loading and parsing the application's configuration.

All settings come from environment variables with development-friendly
defaults: running environment, port, CORS allowed origins, per-room
participant capacity, and the grace period before empty rooms are disposed.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig contains every configuration parameter the server needs.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string

	// Room Settings
	RoomCapacity  int
	RoomIdleGrace time.Duration
}

// LoadConfig reads the application configuration from environment variables,
// applying defaults and validating values. It returns the populated AppConfig
// or the first error encountered.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Server Settings ---
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the allowed range (1024-65535)", cfg.Port)
	}

	// --- Security Settings ---
	originsStr := os.Getenv("ALLOWED_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	// --- Room Settings ---
	capacityStr := os.Getenv("ROOM_CAPACITY")
	if capacityStr == "" {
		capacityStr = "10"
	}
	capacity, err := strconv.Atoi(capacityStr)
	if err != nil {
		return nil, fmt.Errorf("invalid ROOM_CAPACITY environment variable: %w", err)
	}
	if capacity < 0 {
		return nil, fmt.Errorf("ROOM_CAPACITY must not be negative, got %d", capacity)
	}
	cfg.RoomCapacity = capacity

	graceStr := os.Getenv("ROOM_IDLE_GRACE")
	if graceStr == "" {
		graceStr = "5m"
	}
	grace, err := time.ParseDuration(graceStr)
	if err != nil {
		return nil, fmt.Errorf("invalid ROOM_IDLE_GRACE environment variable: %w", err)
	}
	if grace <= 0 {
		return nil, fmt.Errorf("ROOM_IDLE_GRACE must be positive, got %s", grace)
	}
	cfg.RoomIdleGrace = grace

	return cfg, nil
}
