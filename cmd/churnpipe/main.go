// cmd/churnpipe/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/telco-insights/churnpipe/pkg/config"
	"github.com/telco-insights/churnpipe/pkg/logging"
	"github.com/telco-insights/churnpipe/pkg/pipeline"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "churnpipe: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile := fmt.Sprintf("churnpipe_%s.log", time.Now().Format("20060102_150405"))
	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, logFile)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to assemble pipeline", zap.Error(err))
		return err
	}

	run, mdPath, jsonPath, err := p.Run(ctx)
	if err != nil {
		logger.Error("Pipeline run failed", zap.Error(err))
		return err
	}

	fmt.Printf("Run %s complete in %s\n", run.ID, run.Duration().Round(time.Millisecond))
	fmt.Printf("Best model: %s\n", run.Comparison.Best)
	fmt.Printf("Report:  %s\n", mdPath)
	fmt.Printf("Results: %s\n", jsonPath)
	return nil
}
