package watermark

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"
)

const (
	textCanvasWidth  = 150
	textCanvasHeight = 50
	textInset        = 10
	textFontSize     = 24
)

// Load returns the watermark template reused for every image in a run. A
// readable logo wins; a missing or unreadable logo degrades to a rendered
// text watermark and is never fatal.
func Load(logger *zap.Logger, logoPath, text string) *image.NRGBA {
	if logoPath != "" {
		img, err := imaging.Open(logoPath)
		if err == nil {
			logger.Info("Watermark loaded",
				zap.String("path", logoPath),
				zap.Int("width", img.Bounds().Dx()),
				zap.Int("height", img.Bounds().Dy()),
			)
			return imaging.Clone(img)
		}
		logger.Warn("Logo not found. Using text watermark instead.",
			zap.String("path", logoPath),
			zap.Error(err),
		)
	}
	return renderText(logger, text)
}

func renderText(logger *zap.Logger, text string) *image.NRGBA {
	canvas := imaging.New(textCanvasWidth, textCanvasHeight, color.NRGBA{})
	face := textFace(logger)

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.NRGBA{A: 128}),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(textInset),
			Y: fixed.I(textInset) + face.Metrics().Ascent,
		},
	}
	d.DrawString(text)

	logger.Info("Text watermark created",
		zap.String("text", text),
		zap.Int("width", textCanvasWidth),
		zap.Int("height", textCanvasHeight),
	)
	return canvas
}

func textFace(logger *zap.Logger) font.Face {
	ft, err := opentype.Parse(goregular.TTF)
	if err != nil {
		logger.Warn("Falling back to built-in bitmap font", zap.Error(err))
		return basicfont.Face7x13
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    textFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		logger.Warn("Falling back to built-in bitmap font", zap.Error(err))
		return basicfont.Face7x13
	}
	return face
}
