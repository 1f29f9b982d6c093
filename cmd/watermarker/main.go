package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/deadbyteus/bulk-image-watermarker/config"
	"github.com/deadbyteus/bulk-image-watermarker/logging"
	"github.com/deadbyteus/bulk-image-watermarker/processor"
	"github.com/deadbyteus/bulk-image-watermarker/service"
	"github.com/deadbyteus/bulk-image-watermarker/watermark"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// The log file lives inside the output directory, so the directory has
	// to exist before the logger does.
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output directory %s: %v\n", cfg.OutputDir, err)
		os.Exit(1)
	}

	logger, closeLogger, err := logging.New(cfg.OutputDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLogger()

	logger = logger.With(zap.String("run_id", uuid.NewString()))

	logger.Info("Watermarker starting",
		zap.String("input_dir", cfg.InputDir),
		zap.String("output_dir", cfg.OutputDir),
		zap.Float64("scale", cfg.Scale),
		zap.String("position", string(cfg.Position)),
		zap.Int("transparency", cfg.Transparency),
		zap.Int("workers", cfg.Workers),
	)

	template := watermark.Load(logger, cfg.LogoPath, cfg.WatermarkText)

	proc := processor.New(logger, template, processor.Options{
		Scale:        cfg.Scale,
		Position:     cfg.Position,
		Transparency: cfg.Transparency,
	})
	runner := service.NewRunner(logger, proc, cfg.Workers)

	start := time.Now()
	summary, err := runner.Run(context.Background(), cfg.InputDir, cfg.OutputDir)
	if err != nil {
		logger.Error("Run failed", zap.Error(err))
		closeLogger()
		os.Exit(1)
	}

	logger.Info("Processing complete",
		zap.Uint64("successful", summary.Succeeded),
		zap.Uint64("failed", summary.Failed),
		zap.Duration("elapsed", time.Since(start)),
	)
}
