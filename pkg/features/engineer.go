// pkg/features/engineer.go
package features

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/telco-insights/churnpipe/pkg/config"
	"github.com/telco-insights/churnpipe/pkg/table"
)

// ErrBadLabel is returned when the label column holds a value that cannot
// be read as a binary churn flag.
var ErrBadLabel = errors.New("label column contains a non-binary value")

// Service columns that feed the total-services derived feature.
var serviceColumns = []string{
	"PhoneService", "InternetService", "OnlineSecurity", "OnlineBackup",
	"DeviceProtection", "TechSupport", "StreamingTV", "StreamingMovies",
}

// Engineer turns a cleaned record table into a model-ready feature table:
// derived columns, ordinal encoding of categoricals, and standardization.
type Engineer struct {
	labelColumn string
	idColumns   []string
	logger      *zap.Logger
}

// Info describes the engineered feature set
type Info struct {
	FeatureNames    []string            `json:"feature_names"`
	DerivedFeatures []string            `json:"derived_features"`
	Encodings       map[string][]string `json:"encodings"`
	NumericColumns  int                 `json:"numeric_columns"`
}

// NewEngineer creates a feature engineer bound to the dataset schema
func NewEngineer(cfg *config.DatasetConfig, logger *zap.Logger) (*Engineer, error) {
	if cfg == nil {
		return nil, errors.New("dataset configuration cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Engineer{
		labelColumn: cfg.LabelColumn,
		idColumns:   cfg.IDColumns,
		logger:      logger.Named("features"),
	}, nil
}

// Engineer builds the feature table. The input must already be clean: any
// missing value here is a fatal transformation error, not something to
// paper over.
func (e *Engineer) Engineer(t *table.Table) (*table.FeatureTable, *Info, error) {
	if t == nil {
		return nil, nil, errors.New("input table cannot be nil")
	}
	if !t.HasColumn(e.labelColumn) {
		return nil, nil, fmt.Errorf("label column %q not found", e.labelColumn)
	}
	if n := t.MissingCount(); n != 0 {
		return nil, nil, fmt.Errorf("input table has %d missing cells, expected none", n)
	}

	labels, err := e.parseLabels(t)
	if err != nil {
		return nil, nil, err
	}

	info := &Info{Encodings: make(map[string][]string)}

	var names []string
	var columns [][]float64

	addColumn := func(name string, col []float64) {
		names = append(names, name)
		columns = append(columns, col)
	}

	// Base columns, with categoricals ordinal-encoded in sorted level order
	// so the mapping is stable across runs.
	skip := map[string]bool{e.labelColumn: true}
	for _, id := range e.idColumns {
		skip[id] = true
	}
	for _, col := range t.Columns() {
		if skip[col] {
			continue
		}
		values, err := t.Column(col)
		if err != nil {
			return nil, nil, err
		}
		if isCategorical(values) {
			encoded, levels := ordinalEncode(values)
			info.Encodings[col] = levels
			addColumn(col+"_encoded", encoded)
		} else {
			numeric, err := numericColumn(col, values)
			if err != nil {
				return nil, nil, err
			}
			info.NumericColumns++
			addColumn(col, numeric)
		}
	}

	// Derived features, each guarded on the presence of its source columns.
	for _, d := range e.deriveFeatures(t) {
		info.DerivedFeatures = append(info.DerivedFeatures, d.name)
		addColumn(d.name, d.values)
	}

	if len(columns) == 0 {
		return nil, nil, errors.New("no usable feature columns after engineering")
	}

	for i := range columns {
		standardize(columns[i])
	}

	rows := make([][]float64, t.NumRows())
	for r := range rows {
		row := make([]float64, len(columns))
		for c := range columns {
			row[c] = columns[c][r]
		}
		rows[r] = row
	}

	ft, err := table.NewFeatureTable(names, rows, labels)
	if err != nil {
		return nil, nil, fmt.Errorf("engineered features violate invariants: %w", err)
	}
	info.FeatureNames = ft.FeatureNames()

	e.logger.Info("Feature engineering complete",
		zap.Int("features", ft.NumFeatures()),
		zap.Int("derived", len(info.DerivedFeatures)),
		zap.Int("encoded", len(info.Encodings)),
	)
	return ft, info, nil
}

// parseLabels maps the label column onto {0, 1}.
func (e *Engineer) parseLabels(t *table.Table) ([]int, error) {
	values, err := t.Column(e.labelColumn)
	if err != nil {
		return nil, err
	}
	labels := make([]int, len(values))
	for i, v := range values {
		if f, ok := v.Float(); ok {
			switch f {
			case 0:
				labels[i] = 0
			case 1:
				labels[i] = 1
			default:
				return nil, fmt.Errorf("%w: %v at row %d", ErrBadLabel, f, i)
			}
			continue
		}
		switch strings.ToLower(v.String()) {
		case "yes", "true", "churned":
			labels[i] = 1
		case "no", "false", "retained":
			labels[i] = 0
		default:
			return nil, fmt.Errorf("%w: %q at row %d", ErrBadLabel, v.String(), i)
		}
	}
	return labels, nil
}

func isCategorical(values []table.Value) bool {
	for _, v := range values {
		if v.Kind() == table.KindCategorical {
			return true
		}
	}
	return false
}

func numericColumn(name string, values []table.Value) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		f, ok := v.Float()
		if !ok {
			return nil, fmt.Errorf("column %q row %d: expected numeric value", name, i)
		}
		out[i] = f
	}
	return out, nil
}

// ordinalEncode maps category levels to their index in sorted order.
func ordinalEncode(values []table.Value) ([]float64, []string) {
	levelSet := make(map[string]bool)
	for _, v := range values {
		levelSet[v.String()] = true
	}
	levels := make([]string, 0, len(levelSet))
	for level := range levelSet {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	index := make(map[string]int, len(levels))
	for i, level := range levels {
		index[level] = i
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(index[v.String()])
	}
	return out, levels
}

// standardize scales a column in place to zero mean and unit variance.
// Constant columns become all zeros.
func standardize(col []float64) {
	mean, std := stat.MeanStdDev(col, nil)
	if std == 0 {
		for i := range col {
			col[i] = 0
		}
		return
	}
	for i := range col {
		col[i] = (col[i] - mean) / std
	}
}
