package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/deadbyteus/bulk-image-watermarker/compositor"
)

type Config struct {
	InputDir      string
	OutputDir     string
	LogoPath      string
	WatermarkText string
	Scale         float64
	Position      compositor.Position
	Transparency  int
	Workers       int
}

// Load parses the command line into a Config. Any violation of the flag
// contract is returned as an error and must stop the run before any file
// is touched.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	var position string

	fs := flag.NewFlagSet("watermarker", flag.ContinueOnError)
	// The caller reports errors; keep the FlagSet from printing them too.
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.InputDir, "input-dir", "", "Input directory containing images")
	fs.StringVar(&cfg.OutputDir, "output-dir", "", "Output directory for watermarked images (default <input-dir>/watermarked)")
	fs.StringVar(&cfg.LogoPath, "logo-path", "", "Path to watermark image")
	fs.StringVar(&cfg.WatermarkText, "watermark-text", "Watermark", "Text to use when creating text watermark")
	fs.Float64Var(&cfg.Scale, "scale", 0.1, "Watermark width as a fraction of image width")
	fs.StringVar(&position, "position", string(compositor.TopRight), "Watermark position: top-left, top-right, bottom-left, bottom-right, center")
	fs.IntVar(&cfg.Transparency, "transparency", 128, "Watermark transparency (0-255)")
	fs.IntVar(&cfg.Workers, "workers", 1, "Number of files processed concurrently")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(os.Stderr)
			fs.Usage()
		}
		return nil, err
	}

	cfg.InputDir = CleanPath(cfg.InputDir)
	cfg.OutputDir = CleanPath(cfg.OutputDir)
	cfg.LogoPath = CleanPath(cfg.LogoPath)
	cfg.Position = compositor.Position(position)

	if cfg.OutputDir == "" && cfg.InputDir != "" {
		cfg.OutputDir = filepath.Join(cfg.InputDir, "watermarked")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input-dir is required")
	}
	if !compositor.ValidPosition(c.Position) {
		return fmt.Errorf("invalid position %q (choose from top-left, top-right, bottom-left, bottom-right, center)", c.Position)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be greater than 0, got %v", c.Scale)
	}
	if c.Transparency < 0 || c.Transparency > 255 {
		return fmt.Errorf("transparency must be between 0 and 255, got %d", c.Transparency)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// CleanPath strips surrounding whitespace and any embedded newline or
// carriage return from a user-supplied path.
func CleanPath(path string) string {
	path = strings.ReplaceAll(path, "\n", "")
	path = strings.ReplaceAll(path, "\r", "")
	return strings.TrimSpace(path)
}
