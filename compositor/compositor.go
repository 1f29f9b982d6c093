package compositor

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Position names a placement of the watermark on the base image.
type Position string

const (
	TopLeft     Position = "top-left"
	TopRight    Position = "top-right"
	BottomLeft  Position = "bottom-left"
	BottomRight Position = "bottom-right"
	Center      Position = "center"
)

// DefaultPadding is the pixel margin kept between the watermark and the
// image edge for the corner placements.
const DefaultPadding = 10

// ValidPosition reports whether p is one of the five supported placements.
func ValidPosition(p Position) bool {
	switch p {
	case TopLeft, TopRight, BottomLeft, BottomRight, Center:
		return true
	default:
		return false
	}
}

// Resize scales the watermark so its width becomes scale times the base
// image width, preserving the watermark's aspect ratio.
func Resize(wm image.Image, base image.Image, scale float64) *image.NRGBA {
	newWidth := int(float64(base.Bounds().Dx()) * scale)
	return imaging.Resize(wm, newWidth, 0, imaging.Lanczos)
}

// Anchor resolves a placement to the pixel offset of the watermark's
// top-left corner. Unknown placements resolve as top-right.
func Anchor(base image.Image, wm image.Image, pos Position, padding int) image.Point {
	baseW, baseH := base.Bounds().Dx(), base.Bounds().Dy()
	wmW, wmH := wm.Bounds().Dx(), wm.Bounds().Dy()

	switch pos {
	case TopLeft:
		return image.Pt(padding, padding)
	case BottomLeft:
		return image.Pt(padding, baseH-wmH-padding)
	case BottomRight:
		return image.Pt(baseW-wmW-padding, baseH-wmH-padding)
	case Center:
		return image.Pt((baseW-wmW)/2, (baseH-wmH)/2)
	default:
		return image.Pt(baseW-wmW-padding, padding)
	}
}

// Blend composites the watermark onto the base image at the given offset.
// Transparency 0-255 attenuates the watermark's own per-pixel alpha, so a
// partially transparent watermark is dimmed further rather than reset. The
// result is fully opaque.
func Blend(base image.Image, wm image.Image, at image.Point, transparency int) *image.NRGBA {
	bounds := base.Bounds()
	canvas := imaging.New(bounds.Dx(), bounds.Dy(), color.NRGBA{})
	canvas = imaging.Paste(canvas, base, image.Pt(0, 0))
	return imaging.Overlay(canvas, wm, at, float64(transparency)/255)
}
