// pkg/dataset/csv.go
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/telco-insights/churnpipe/pkg/config"
	"github.com/telco-insights/churnpipe/pkg/table"
)

// CSVSource reads a record table from a local CSV file with a header row.
type CSVSource struct {
	path     string
	required []string
	logger   *zap.Logger
}

// NewCSVSource creates a CSV-backed dataset source
func NewCSVSource(cfg *config.DatasetConfig, logger *zap.Logger) (*CSVSource, error) {
	if cfg == nil {
		return nil, errors.New("dataset configuration cannot be nil")
	}
	if cfg.Path == "" {
		return nil, errors.New("csv source requires a file path")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &CSVSource{
		path:     cfg.Path,
		required: cfg.RequiredColumns,
		logger:   logger.Named("csv-source"),
	}, nil
}

// Load reads the whole file into a record table and validates the schema.
// A missing file or a header lacking required columns is fatal to the run.
func (s *CSVSource) Load(ctx context.Context) (*table.Table, error) {
	s.logger.Info("Loading dataset", zap.String("path", s.path))

	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	t, err := table.New(header)
	if err != nil {
		return nil, fmt.Errorf("invalid csv header: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}

		row := make([]table.Value, len(record))
		for i, cell := range record {
			row[i] = table.ParseValue(cell)
		}
		if err := t.AppendRow(row); err != nil {
			return nil, fmt.Errorf("failed to append row %d: %w", t.NumRows(), err)
		}
	}

	if err := validateSchema(t, s.required); err != nil {
		return nil, err
	}

	s.logger.Info("Dataset loaded",
		zap.Int("rows", t.NumRows()),
		zap.Int("columns", t.NumCols()),
		zap.Int("missing_cells", t.MissingCount()),
	)
	return t, nil
}
