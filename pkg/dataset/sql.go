// pkg/dataset/sql.go
package dataset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	// Database drivers for the supported SQL sources.
	_ "github.com/lib/pq"
	_ "github.com/snowflakedb/gosnowflake"

	"github.com/telco-insights/churnpipe/pkg/config"
	"github.com/telco-insights/churnpipe/pkg/table"
)

const sqlQueryTimeout = 5 * time.Minute

// SQLSource reads a record table from a Postgres or Snowflake query.
type SQLSource struct {
	driver   string
	dsn      string
	query    string
	required []string
	logger   *zap.Logger
}

// NewSQLSource creates a SQL-backed dataset source
func NewSQLSource(cfg *config.DatasetConfig, logger *zap.Logger) (*SQLSource, error) {
	if cfg == nil {
		return nil, errors.New("dataset configuration cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	var driver string
	switch cfg.Source {
	case config.SourcePostgres:
		driver = "postgres"
	case config.SourceSnowflake:
		driver = "snowflake"
	default:
		return nil, fmt.Errorf("source %q is not a SQL source", cfg.Source)
	}

	return &SQLSource{
		driver:   driver,
		dsn:      cfg.DSN,
		query:    cfg.Query,
		required: cfg.RequiredColumns,
		logger:   logger.Named("sql-source"),
	}, nil
}

// Load runs the configured query and materializes the result set as a
// record table. The connection lives only for the duration of the load.
func (s *SQLSource) Load(ctx context.Context) (*table.Table, error) {
	s.logger.Info("Loading dataset from database", zap.String("driver", s.driver))

	db, err := sqlx.ConnectContext(ctx, s.driver, s.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", s.driver, err)
	}
	defer db.Close()

	queryCtx, cancel := context.WithTimeout(ctx, sqlQueryTimeout)
	defer cancel()

	rows, err := db.QueryxContext(queryCtx, s.query)
	if err != nil {
		return nil, fmt.Errorf("dataset query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	t, err := table.New(columns)
	if err != nil {
		return nil, fmt.Errorf("invalid result schema: %w", err)
	}

	for rows.Next() {
		raw, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", t.NumRows(), err)
		}
		row := make([]table.Value, len(raw))
		for i, cell := range raw {
			row[i], err = sqlValue(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", t.NumRows(), columns[i], err)
			}
		}
		if err := t.AppendRow(row); err != nil {
			return nil, fmt.Errorf("failed to append row %d: %w", t.NumRows(), err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dataset query iteration failed: %w", err)
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

// sqlValue converts a scanned database value into a table cell.
func sqlValue(v interface{}) (table.Value, error) {
	switch x := v.(type) {
	case nil:
		return table.Missing(), nil
	case float64:
		return table.Num(x), nil
	case float32:
		return table.Num(float64(x)), nil
	case int64:
		return table.Num(float64(x)), nil
	case int32:
		return table.Num(float64(x)), nil
	case int:
		return table.Num(float64(x)), nil
	case bool:
		if x {
			return table.Str("Yes"), nil
		}
		return table.Str("No"), nil
	case string:
		return table.ParseValue(x), nil
	case []byte:
		return table.ParseValue(string(x)), nil
	case time.Time:
		return table.Str(x.Format(time.RFC3339)), nil
	default:
		return table.Value{}, fmt.Errorf("unsupported database value of type %T", v)
	}
}
