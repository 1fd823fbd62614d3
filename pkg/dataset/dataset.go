// pkg/dataset/dataset.go
package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/telco-insights/churnpipe/pkg/config"
	"github.com/telco-insights/churnpipe/pkg/table"
)

// ErrMissingColumns is returned when the loaded data lacks required columns.
var ErrMissingColumns = errors.New("dataset is missing required columns")

// Source loads a record table from somewhere.
type Source interface {
	// Load reads the dataset into memory and validates the required schema.
	Load(ctx context.Context) (*table.Table, error)
}

// NewSource creates the source selected by the dataset configuration
func NewSource(cfg *config.DatasetConfig, logger *zap.Logger) (Source, error) {
	if cfg == nil {
		return nil, errors.New("dataset configuration cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	switch cfg.Source {
	case config.SourceCSV:
		return NewCSVSource(cfg, logger)
	case config.SourcePostgres, config.SourceSnowflake:
		return NewSQLSource(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Source)
	}
}

// validateSchema checks that every required column is present.
func validateSchema(t *table.Table, required []string) error {
	var missing []string
	for _, col := range required {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}
