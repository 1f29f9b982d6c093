package processor

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"github.com/deadbyteus/bulk-image-watermarker/compositor"
)

const jpegQuality = 95

// Options are the per-run compositing parameters shared by every file.
type Options struct {
	Scale        float64
	Position     compositor.Position
	Transparency int
}

type Processor struct {
	logger   *zap.Logger
	template image.Image
	opts     Options
}

// New creates a processor around an immutable watermark template. The
// template is never mutated; every file gets its own scaled copy.
func New(logger *zap.Logger, template image.Image, opts Options) *Processor {
	return &Processor{
		logger:   logger,
		template: template,
		opts:     opts,
	}
}

// Process watermarks a single file and writes the result under outDir with
// the same filename. All failures come back as errors; none abort the batch.
func (p *Processor) Process(srcPath, outDir string) (string, error) {
	name := filepath.Base(srcPath)

	src, err := imaging.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceOpen, err)
	}

	// Clone normalizes palette and grayscale sources to 8-bit per channel.
	base := imaging.Clone(src)
	p.logger.Info("Processing image",
		zap.String("file", name),
		zap.Int("width", base.Bounds().Dx()),
		zap.Int("height", base.Bounds().Dy()),
	)

	wm := compositor.Resize(p.template, base, p.opts.Scale)
	at := compositor.Anchor(base, wm, p.opts.Position, compositor.DefaultPadding)
	out := compositor.Blend(base, wm, at, p.opts.Transparency)

	outPath := filepath.Join(outDir, name)
	if err := save(out, outPath); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return outPath, nil
}

func save(img *image.NRGBA, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return imaging.Save(img, path, imaging.JPEGQuality(jpegQuality))
	case ".webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := nativewebp.Encode(f, img, nil); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return imaging.Save(img, path)
	}
}
