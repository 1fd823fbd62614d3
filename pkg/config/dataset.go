// pkg/config/dataset.go
package config

import (
	"errors"
	"fmt"
)

// Dataset source types
const (
	SourceCSV       = "csv"
	SourcePostgres  = "postgres"
	SourceSnowflake = "snowflake"
)

// DatasetConfig holds the dataset source parameters
type DatasetConfig struct {
	// Source is one of csv, postgres, snowflake
	Source string

	// CSV source
	Path string

	// SQL sources
	DSN   string
	Query string

	// Schema
	LabelColumn     string
	RequiredColumns []string
	IDColumns       []string
}

// LoadDatasetConfig loads dataset configuration from environment variables
func LoadDatasetConfig() (*DatasetConfig, error) {
	cfg := &DatasetConfig{
		Source:      getEnv("DATASET_SOURCE", SourceCSV),
		Path:        getEnv("DATASET_PATH", "data/telco_customer_churn.csv"),
		DSN:         getEnv("DATASET_DSN", ""),
		Query:       getEnv("DATASET_QUERY", "SELECT * FROM customers"),
		LabelColumn: getEnv("LABEL_COLUMN", "Churn"),
		RequiredColumns: getEnvAsList("REQUIRED_COLUMNS",
			[]string{"customerID", "Churn", "tenure", "MonthlyCharges"}),
		IDColumns: getEnvAsList("ID_COLUMNS", []string{"customerID"}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the dataset configuration is consistent
func (c *DatasetConfig) Validate() error {
	switch c.Source {
	case SourceCSV:
		if c.Path == "" {
			return errors.New("DATASET_PATH is required for the csv source")
		}
	case SourcePostgres, SourceSnowflake:
		if c.DSN == "" {
			return fmt.Errorf("DATASET_DSN is required for the %s source", c.Source)
		}
		if c.Query == "" {
			return fmt.Errorf("DATASET_QUERY is required for the %s source", c.Source)
		}
	default:
		return fmt.Errorf("unknown dataset source %q", c.Source)
	}

	if c.LabelColumn == "" {
		return errors.New("label column cannot be empty")
	}

	for _, col := range c.RequiredColumns {
		if col == c.LabelColumn {
			return nil
		}
	}
	return fmt.Errorf("required columns must include the label column %q", c.LabelColumn)
}
