// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config represents the application configuration
type Config struct {
	// Dataset source
	Dataset *DatasetConfig

	// Model hyperparameters
	Models *ModelsConfig

	// Train/test split
	TestRatio float64
	Seed      int64

	// Evaluation
	PrimaryMetric string

	// Output artifacts
	OutputDir string

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		// Default values
		TestRatio:     getEnvAsFloat("TEST_RATIO", 0.2),
		Seed:          int64(getEnvAsInt("RANDOM_SEED", 42)),
		PrimaryMetric: getEnv("PRIMARY_METRIC", "f1"),
		OutputDir:     getEnv("OUTPUT_DIR", "output"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
	}

	datasetCfg, err := LoadDatasetConfig()
	if err != nil {
		return nil, errors.New("failed to load dataset configuration: " + err.Error())
	}
	cfg.Dataset = datasetCfg

	cfg.Models = LoadModelsConfig(cfg.Seed)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.Dataset == nil {
		return errors.New("dataset configuration is required")
	}
	if err := c.Dataset.Validate(); err != nil {
		return err
	}

	if c.Models == nil {
		return errors.New("model configuration is required")
	}
	if err := c.Models.Validate(); err != nil {
		return err
	}

	if c.TestRatio <= 0 || c.TestRatio >= 1 {
		return fmt.Errorf("test ratio must be in (0, 1), got %v", c.TestRatio)
	}

	switch c.PrimaryMetric {
	case "accuracy", "precision", "recall", "f1", "auc_roc":
	default:
		return fmt.Errorf("unknown primary metric %q", c.PrimaryMetric)
	}

	if c.OutputDir == "" {
		return errors.New("output directory cannot be empty")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
