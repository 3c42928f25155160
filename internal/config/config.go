package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"fragrancerater/internal/errors"
)

// Config is the complete application configuration, loaded from the
// environment (SPEC_FULL.md §10.2).
type Config struct {
	Database DatabaseConfig
	LLM      LLMConfig
	Server   ServerConfig
	Scoring  ScoringConfig
	Import   ImportConfig
}

// DatabaseConfig holds Postgres connection settings (SPEC_FULL.md §11.1).
type DatabaseConfig struct {
	URL string
}

// LLMConfig holds the explanation adapter's external provider settings
// (spec §4.5).
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
}

// ServerConfig holds the HTTP API's settings (SPEC_FULL.md §11.4).
type ServerConfig struct {
	Port string
}

// ScoringConfig carries the recognized scoring overrides of spec §6. Each
// field takes the engine default when its environment variable is unset or
// does not parse; an explicit value, zero included, is used as given.
type ScoringConfig struct {
	MinEvaluations int
	VetoThreshold  float64
	DefaultLimit   int
}

// ImportConfig holds the bulk-importer's source file path (SPEC_FULL.md
// §11.3).
type ImportConfig struct {
	CatalogFile string
}

// Load reads configuration from a .env file (if present) and the process
// environment, then validates it. A missing .env file is not an error —
// godotenv.Load is best-effort, matching how deployed environments inject
// variables directly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Database: loadDatabaseConfig(),
		LLM:      loadLLMConfig(),
		Server:   loadServerConfig(),
		Scoring:  loadScoringConfig(),
		Import:   loadImportConfig(),
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{URL: os.Getenv("DATABASE_URL")}
}

func loadLLMConfig() LLMConfig {
	return LLMConfig{
		APIKey:      os.Getenv("LLM_API_KEY"),
		BaseURL:     getEnvOrDefault("LLM_BASE_URL", "https://api.openai.com/v1"),
		Model:       getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
		MaxTokens:   getEnvIntOrDefault("LLM_MAX_TOKENS", 300),
		Temperature: getEnvFloatOrDefault("LLM_TEMPERATURE", 0.7),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{Port: getEnvOrDefault("HTTP_PORT", "8080")}
}

func loadScoringConfig() ScoringConfig {
	return ScoringConfig{
		MinEvaluations: getEnvIntOrDefault("MIN_EVALUATIONS", 3),
		VetoThreshold:  getEnvFloatOrDefault("VETO_THRESHOLD", -3.0),
		DefaultLimit:   getEnvIntOrDefault("DEFAULT_LIMIT", 10),
	}
}

func loadImportConfig() ImportConfig {
	return ImportConfig{CatalogFile: os.Getenv("CATALOG_FILE")}
}

// validate enforces the fatal-at-startup half of spec §7's Configuration
// taxonomy. The LLM API key is intentionally not required here: spec §4.5
// treats a missing key as "not configured", falling back to template
// explanations rather than refusing to start.
func validate(cfg *Config) error {
	if cfg.Database.URL == "" {
		return errors.Configuration("DATABASE_URL is required")
	}
	if cfg.Scoring.MinEvaluations < 0 {
		return errors.Configuration("MIN_EVALUATIONS must be non-negative")
	}
	if cfg.Scoring.DefaultLimit <= 0 {
		return errors.Configuration("DEFAULT_LIMIT must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
