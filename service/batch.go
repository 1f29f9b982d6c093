package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/deadbyteus/bulk-image-watermarker/pool"
	"github.com/deadbyteus/bulk-image-watermarker/processor"
)

// supportedExt is the set of extensions picked up from the input directory.
// Matching is case-insensitive; subdirectories are not traversed.
var supportedExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".webp": true,
}

// Summary is the aggregate outcome of one directory run.
type Summary struct {
	Succeeded uint64
	Failed    uint64
}

type Runner struct {
	logger  *zap.Logger
	proc    *processor.Processor
	workers int
}

func NewRunner(logger *zap.Logger, proc *processor.Processor, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		logger:  logger,
		proc:    proc,
		workers: workers,
	}
}

// Run watermarks every supported image in inputDir into outputDir. A single
// failing file never stops the batch; the counters carry the outcome. With
// one worker, files are processed sequentially in directory order.
func (r *Runner) Run(ctx context.Context, inputDir, outputDir string) (Summary, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read input directory: %w", err)
	}

	var succeeded, failed atomic.Uint64

	perFile := func(name string) {
		defer func() {
			if rec := recover(); rec != nil {
				failed.Add(1)
				r.logger.Error("Panic while processing",
					zap.String("file", name),
					zap.Any("error", rec),
				)
			}
		}()

		outPath, err := r.proc.Process(filepath.Join(inputDir, name), outputDir)
		if err != nil {
			failed.Add(1)
			r.logger.Error("Error processing",
				zap.String("file", name),
				zap.Error(err),
			)
			return
		}
		succeeded.Add(1)
		r.logger.Info("Successfully processed",
			zap.String("file", name),
			zap.String("output", outPath),
		)
	}

	var workers *pool.Pool
	if r.workers > 1 {
		workers = pool.New(r.workers)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !supportedExt[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		name := entry.Name()
		if workers != nil {
			workers.Submit(ctx, func() { perFile(name) })
		} else {
			perFile(name)
		}
	}

	if workers != nil {
		workers.Wait()
	}

	return Summary{Succeeded: succeeded.Load(), Failed: failed.Load()}, nil
}
