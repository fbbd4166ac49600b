package letterbox

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

// bandedImage builds a w×h image with n leading and trailing rows (or
// columns, for vertical=false) in distinct colors and a green body.
func bandedImage(w, h, n int, horizontal bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: green}, image.Point{}, draw.Src)
	if horizontal {
		draw.Draw(img, image.Rect(0, 0, w, n), &image.Uniform{C: red}, image.Point{}, draw.Src)
		draw.Draw(img, image.Rect(0, h-n, w, h), &image.Uniform{C: blue}, image.Point{}, draw.Src)
	} else {
		draw.Draw(img, image.Rect(0, 0, n, h), &image.Uniform{C: red}, image.Point{}, draw.Src)
		draw.Draw(img, image.Rect(w-n, 0, w, h), &image.Uniform{C: blue}, image.Point{}, draw.Src)
	}
	return img
}

func TestEdgeColors(t *testing.T) {
	t.Run("landscape samples top and bottom strips", func(t *testing.T) {
		// 5% of height 40 is a 2-pixel strip
		img := bandedImage(40, 40, 2, true)

		first, second := EdgeColors(img, Landscape)
		if first != red {
			t.Errorf("first = %v, want %v", first, red)
		}
		if second != blue {
			t.Errorf("second = %v, want %v", second, blue)
		}
	})

	t.Run("portrait samples left and right strips", func(t *testing.T) {
		img := bandedImage(40, 40, 2, false)

		first, second := EdgeColors(img, Portrait)
		if first != red {
			t.Errorf("first = %v, want %v", first, red)
		}
		if second != blue {
			t.Errorf("second = %v, want %v", second, blue)
		}
	})

	t.Run("thin image falls back to one-pixel strips", func(t *testing.T) {
		// 5% of height 10 rounds down to zero; the sampler must still
		// take a single row from each edge.
		img := bandedImage(10, 10, 1, true)

		first, second := EdgeColors(img, Landscape)
		if first != red {
			t.Errorf("first = %v, want %v", first, red)
		}
		if second != blue {
			t.Errorf("second = %v, want %v", second, blue)
		}
	})

	t.Run("uniform image yields matching colors", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 60, 60))
		draw.Draw(img, img.Bounds(), &image.Uniform{C: green}, image.Point{}, draw.Src)

		first, second := EdgeColors(img, Portrait)
		if first != second || first != green {
			t.Errorf("got (%v, %v), want both %v", first, second, green)
		}
	})
}

func TestEdgeLength(t *testing.T) {
	tests := []struct {
		axis int
		want int
	}{
		{100, 5},
		{40, 2},
		{99, 4},  // floor, not round
		{10, 1},  // clamped from 0
		{1, 1},
	}
	for _, tt := range tests {
		if got := edgeLength(tt.axis); got != tt.want {
			t.Errorf("edgeLength(%d) = %d, want %d", tt.axis, got, tt.want)
		}
	}
}
