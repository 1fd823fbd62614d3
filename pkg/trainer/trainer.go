// pkg/trainer/trainer.go
package trainer

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/telco-insights/churnpipe/pkg/classifier"
	"github.com/telco-insights/churnpipe/pkg/config"
	"github.com/telco-insights/churnpipe/pkg/table"
)

// Trained pairs a fitted model with its training stats
type Trained struct {
	Model     classifier.Classifier
	Duration  time.Duration
	TrainRows int
}

// Trainer builds and fits the classifiers selected by configuration.
// A fit failure aborts the run immediately; there are no retries.
type Trainer struct {
	cfg    *config.ModelsConfig
	logger *zap.Logger
}

// New creates a new Trainer instance
func New(cfg *config.ModelsConfig, logger *zap.Logger) (*Trainer, error) {
	if cfg == nil {
		return nil, errors.New("model configuration cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Trainer{cfg: cfg, logger: logger.Named("trainer")}, nil
}

// TrainAll fits one model per configured kind against the training split,
// in configuration order.
func (t *Trainer) TrainAll(train *table.FeatureTable) ([]Trained, error) {
	if train == nil {
		return nil, errors.New("training split cannot be nil")
	}

	X := train.Rows()
	y := train.Labels()

	results := make([]Trained, 0, len(t.cfg.Kinds))
	for _, kind := range t.cfg.Kinds {
		model, err := t.build(kind)
		if err != nil {
			return nil, err
		}

		t.logger.Info("Training model",
			zap.String("model", model.Name()),
			zap.Int("rows", train.NumRows()),
			zap.Int("features", train.NumFeatures()),
		)

		start := time.Now()
		if err := model.Fit(X, y); err != nil {
			return nil, fmt.Errorf("failed to train %s: %w", model.Name(), err)
		}
		elapsed := time.Since(start)

		t.logger.Info("Training complete",
			zap.String("model", model.Name()),
			zap.Duration("duration", elapsed),
		)
		results = append(results, Trained{
			Model:     model,
			Duration:  elapsed,
			TrainRows: train.NumRows(),
		})
	}
	return results, nil
}

// build constructs an untrained model for a kind selector.
func (t *Trainer) build(kind string) (classifier.Classifier, error) {
	switch kind {
	case config.ModelLogisticRegression:
		return classifier.NewLogisticRegression(t.cfg.LogisticRegression), nil
	case config.ModelRandomForest:
		return classifier.NewRandomForest(t.cfg.RandomForest), nil
	case config.ModelGradientBoosting:
		return classifier.NewGradientBoosting(t.cfg.GradientBoosting), nil
	default:
		return nil, fmt.Errorf("unknown model kind %q", kind)
	}
}
