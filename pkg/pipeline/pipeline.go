// pkg/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/telco-insights/churnpipe/pkg/cleaner"
	"github.com/telco-insights/churnpipe/pkg/config"
	"github.com/telco-insights/churnpipe/pkg/dataset"
	"github.com/telco-insights/churnpipe/pkg/evaluate"
	"github.com/telco-insights/churnpipe/pkg/features"
	"github.com/telco-insights/churnpipe/pkg/report"
	"github.com/telco-insights/churnpipe/pkg/split"
	"github.com/telco-insights/churnpipe/pkg/trainer"
)

// Stage sentinels. Every error leaving Run wraps exactly one of these, so
// callers can tell which stage failed without parsing messages.
var (
	ErrLoad      = errors.New("load stage failed")
	ErrTransform = errors.New("transform stage failed")
	ErrTrain     = errors.New("train stage failed")
	ErrEval      = errors.New("evaluation stage failed")
	ErrReport    = errors.New("report stage failed")
)

// Pipeline wires the full churn run: load, clean, engineer features, split,
// train, evaluate, report. Stages run in order and fail fast; no report is
// written for a failed run.
type Pipeline struct {
	cfg       *config.Config
	source    dataset.Source
	cleaner   *cleaner.Cleaner
	engineer  *features.Engineer
	trainer   *trainer.Trainer
	evaluator *evaluate.Evaluator
	writer    *report.Writer
	logger    *zap.Logger
}

// New assembles a pipeline from configuration.
func New(cfg *config.Config, logger *zap.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("configuration cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	source, err := dataset.NewSource(cfg.Dataset, logger)
	if err != nil {
		return nil, err
	}
	cl, err := cleaner.NewCleaner(logger)
	if err != nil {
		return nil, err
	}
	eng, err := features.NewEngineer(cfg.Dataset, logger)
	if err != nil {
		return nil, err
	}
	tr, err := trainer.New(cfg.Models, logger)
	if err != nil {
		return nil, err
	}
	ev, err := evaluate.New(cfg.PrimaryMetric, logger)
	if err != nil {
		return nil, err
	}
	wr, err := report.NewWriter(cfg.OutputDir, logger)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:       cfg,
		source:    source,
		cleaner:   cl,
		engineer:  eng,
		trainer:   tr,
		evaluator: ev,
		writer:    wr,
		logger:    logger.Named("pipeline"),
	}, nil
}

// Run executes the pipeline end to end and returns the completed run record
// alongside the report and results file paths.
func (p *Pipeline) Run(ctx context.Context) (*report.Run, string, string, error) {
	run := report.NewRun()
	p.logger.Info("Starting churn pipeline run", zap.String("run_id", run.ID))

	raw, err := p.source.Load(ctx)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %w", ErrLoad, err)
	}
	run.Dataset = report.DatasetSummary{
		Source:  p.cfg.Dataset.Source,
		Path:    p.cfg.Dataset.Path,
		Rows:    raw.NumRows(),
		Columns: raw.NumCols(),
	}

	cleaned, cleanReport, err := p.cleaner.Clean(raw)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %w", ErrTransform, err)
	}
	run.Cleaning = cleanReport

	ft, info, err := p.engineer.Engineer(cleaned)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %w", ErrTransform, err)
	}
	run.Features = info

	train, test, err := split.Stratified(ft, p.cfg.TestRatio, p.cfg.Seed)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %w", ErrTransform, err)
	}
	run.Split = report.SplitSummary{
		TrainRows:         train.NumRows(),
		TestRows:          test.NumRows(),
		TestRatio:         p.cfg.TestRatio,
		Seed:              p.cfg.Seed,
		TrainPositiveRate: train.PositiveRate(),
		TestPositiveRate:  test.PositiveRate(),
	}
	p.logger.Info("Split complete",
		zap.Int("train_rows", train.NumRows()),
		zap.Int("test_rows", test.NumRows()),
	)

	trained, err := p.trainer.TrainAll(train)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %w", ErrTrain, err)
	}

	results, comparison, err := p.evaluator.EvaluateAll(trained, test)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %w", ErrEval, err)
	}
	run.Results = results
	run.Comparison = comparison

	run.Finish()
	mdPath, jsonPath, err := p.writer.Write(run)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %w", ErrReport, err)
	}

	p.logger.Info("Pipeline run complete",
		zap.String("run_id", run.ID),
		zap.String("best_model", comparison.Best),
		zap.Duration("duration", run.Duration()),
	)
	return run, mdPath, jsonPath, nil
}
