package compositor

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func solidImage(width, height int, c color.NRGBA) *image.NRGBA {
	return imaging.New(width, height, c)
}

func TestResize_PreservesAspectRatio(t *testing.T) {
	wm := solidImage(300, 100, color.NRGBA{A: 255})
	base := solidImage(1000, 800, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	for _, scale := range []float64{0.05, 0.1, 0.25, 0.5, 1.0, 1.5} {
		resized := Resize(wm, base, scale)

		wantW := int(1000 * scale)
		if resized.Bounds().Dx() != wantW {
			t.Errorf("scale %v: expected width %d, got %d", scale, wantW, resized.Bounds().Dx())
		}

		wantH := int(float64(wantW)*100.0/300.0 + 0.5)
		gotH := resized.Bounds().Dy()
		if gotH < wantH-1 || gotH > wantH+1 {
			t.Errorf("scale %v: expected height near %d, got %d", scale, wantH, gotH)
		}
	}
}

func TestAnchor_Table(t *testing.T) {
	base := solidImage(1000, 800, color.NRGBA{A: 255})
	wm := solidImage(100, 40, color.NRGBA{A: 255})

	cases := []struct {
		pos  Position
		want image.Point
	}{
		{TopLeft, image.Pt(10, 10)},
		{TopRight, image.Pt(890, 10)},
		{BottomLeft, image.Pt(10, 750)},
		{BottomRight, image.Pt(890, 750)},
		{Center, image.Pt(450, 380)},
	}

	for _, tc := range cases {
		if got := Anchor(base, wm, tc.pos, DefaultPadding); got != tc.want {
			t.Errorf("Anchor(%s) = %v, want %v", tc.pos, got, tc.want)
		}
	}
}

func TestAnchor_UnknownFallsBackToTopRight(t *testing.T) {
	base := solidImage(1000, 800, color.NRGBA{A: 255})
	wm := solidImage(100, 40, color.NRGBA{A: 255})

	got := Anchor(base, wm, Position("nowhere"), DefaultPadding)
	want := Anchor(base, wm, TopRight, DefaultPadding)
	if got != want {
		t.Errorf("Unknown position = %v, want top-right %v", got, want)
	}
}

func TestAnchor_KeepsWatermarkInBounds(t *testing.T) {
	positions := []Position{TopLeft, TopRight, BottomLeft, BottomRight, Center}

	cases := []struct {
		baseW, baseH, wmW, wmH, padding int
	}{
		{1000, 800, 100, 40, 10},
		{640, 480, 200, 150, 10},
		{333, 217, 50, 33, 5},
		{100, 100, 80, 80, 10},
		{2048, 1536, 1, 1, 0},
	}

	for _, tc := range cases {
		base := solidImage(tc.baseW, tc.baseH, color.NRGBA{A: 255})
		wm := solidImage(tc.wmW, tc.wmH, color.NRGBA{A: 255})

		for _, pos := range positions {
			at := Anchor(base, wm, pos, tc.padding)
			if at.X < 0 || at.Y < 0 || at.X+tc.wmW > tc.baseW || at.Y+tc.wmH > tc.baseH {
				t.Errorf("Anchor(%s) on %dx%d wm %dx%d pad %d leaves bounds: %v",
					pos, tc.baseW, tc.baseH, tc.wmW, tc.wmH, tc.padding, at)
			}
		}
	}
}

func TestBlend_TransparencyMonotonic(t *testing.T) {
	base := solidImage(100, 100, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	wm := solidImage(20, 20, color.NRGBA{A: 255}) // opaque black

	prev := -1
	for _, transparency := range []int{0, 64, 128, 192, 255} {
		out := Blend(base, wm, image.Pt(0, 0), transparency)
		r := int(out.NRGBAAt(10, 10).R)

		if prev >= 0 && r > prev {
			t.Errorf("transparency %d: red %d brighter than previous %d; watermark contribution must grow", transparency, r, prev)
		}
		prev = r
	}

	if zero := Blend(base, wm, image.Pt(0, 0), 0).NRGBAAt(10, 10); zero.R != 255 {
		t.Errorf("transparency 0: expected untouched base pixel, got %v", zero)
	}
	if full := Blend(base, wm, image.Pt(0, 0), 255).NRGBAAt(10, 10); full.R != 0 {
		t.Errorf("transparency 255: expected fully applied watermark, got %v", full)
	}
}

func TestBlend_OutsideFootprintUntouched(t *testing.T) {
	base := solidImage(100, 100, color.NRGBA{R: 10, G: 200, B: 30, A: 255})
	wm := solidImage(20, 20, color.NRGBA{A: 255})

	out := Blend(base, wm, image.Pt(0, 0), 200)
	got := out.NRGBAAt(80, 80)
	want := color.NRGBA{R: 10, G: 200, B: 30, A: 255}
	if got != want {
		t.Errorf("Pixel outside watermark changed: got %v, want %v", got, want)
	}
}

func TestBlend_AttenuatesExistingAlpha(t *testing.T) {
	base := solidImage(100, 100, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	half := solidImage(20, 20, color.NRGBA{A: 128}) // already semi-transparent black
	full := solidImage(20, 20, color.NRGBA{A: 255})

	attenuated := Blend(base, half, image.Pt(0, 0), 128).NRGBAAt(10, 10).R
	direct := Blend(base, full, image.Pt(0, 0), 128).NRGBAAt(10, 10).R

	if attenuated <= direct {
		t.Errorf("Semi-transparent watermark must contribute less than opaque one: %d vs %d", attenuated, direct)
	}
}

func TestBlend_ResultIsOpaque(t *testing.T) {
	base := solidImage(50, 50, color.NRGBA{R: 5, G: 5, B: 5, A: 255})
	wm := solidImage(10, 10, color.NRGBA{R: 200, A: 128})

	out := Blend(base, wm, image.Pt(5, 5), 128)
	for _, pt := range []image.Point{{0, 0}, {7, 7}, {49, 49}} {
		if a := out.NRGBAAt(pt.X, pt.Y).A; a != 255 {
			t.Errorf("Pixel %v alpha = %d, want 255", pt, a)
		}
	}
}
