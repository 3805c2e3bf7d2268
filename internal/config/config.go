package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/osse101/GridClash_Go/internal/domain"
	"github.com/osse101/GridClash_Go/internal/logger"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"gt=0,lt=65536"`
	LogLevel    string `validate:"required"`
	LogFormat   string `validate:"required,oneof=json text"`
	ServiceName string `validate:"required"`
	Version     string `validate:"required"`
	Environment string `validate:"required"`

	// World bounds for new encounters. Fixed per process.
	WorldMaxX int `validate:"gt=0"`
	WorldMaxY int `validate:"gt=0"`

	Difficulty domain.Difficulty `validate:"required"`

	ItemsConfigPath string `validate:"required"`
	DeadLetterPath  string `validate:"required"`

	// APIKey guards the action endpoints; empty disables authentication,
	// which is only sensible in development.
	APIKey         string
	TrustedProxies []string

	// Seconds an idle encounter stays registered before eviction.
	EncounterTTL int `validate:"gt=0"`
}

// Load loads the configuration from environment variables. World bounds and
// difficulty never fail the load: malformed values fall back to defaults with
// a logged warning so an encounter can always be constructed.
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:        getEnv(EnvLogLevel, logger.LogLevelInfo),
		LogFormat:       getEnv(EnvLogFormat, logger.LogFormatText),
		ServiceName:     getEnv(EnvServiceName, logger.DefaultServiceName),
		Version:         getEnv(EnvVersion, logger.DefaultVersion),
		Environment:     getEnv(EnvEnvironment, logger.EnvironmentDev),
		WorldMaxX:       getEnvInt(EnvWorldMaxX, DefaultWorldMaxX),
		WorldMaxY:       getEnvInt(EnvWorldMaxY, DefaultWorldMaxY),
		Difficulty:      getEnvDifficulty(EnvDifficulty),
		ItemsConfigPath: getEnv(EnvItemsPath, ConfigPathItems),
		DeadLetterPath:  getEnv(EnvDeadLetter, DefaultDeadLetterPath),
		EncounterTTL:    getEnvInt(EnvEncounterTTL, DefaultEncounterTTL),
		APIKey:          getEnv(EnvAPIKey, ""),
		TrustedProxies:  splitList(getEnv(EnvTrustedProxies, "")),
	}

	portStr := getEnv(EnvPort, strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", EnvPort, err)
	}
	cfg.Port = port

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// splitList parses a comma-separated environment value into a slice,
// trimming whitespace and dropping empty entries.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable, substituting the
// default on absence or parse failure.
func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logger.Warn("invalid integer in environment, using default",
			"key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return n
}

// getEnvDifficulty parses the difficulty, substituting Beginner on absence
// or an unknown value.
func getEnvDifficulty(key string) domain.Difficulty {
	value, exists := os.LookupEnv(key)
	if !exists {
		return domain.DifficultyBeginner
	}
	d, err := domain.ParseDifficulty(value)
	if err != nil {
		logger.Warn("unknown difficulty in environment, using default",
			"key", key, "value", value, "default", domain.DifficultyBeginner)
		return domain.DifficultyBeginner
	}
	return d
}
