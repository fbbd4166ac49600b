package letterbox

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func TestCompositeLandscape(t *testing.T) {
	// Landscape halves are cross-wired: the first (top strip) color lands on
	// the bottom half, the second (bottom strip) color on the top.
	trimmed := solidImage(10, 4, green)

	canvas, err := Composite(trimmed, 10, 10, red, blue, Landscape)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Image is centered at rows 3..6; rows above get the second color,
	// rows below the first.
	checks := []struct {
		y    int
		want color.NRGBA
	}{
		{0, blue},
		{2, blue},
		{3, green},
		{6, green},
		{7, red},
		{9, red},
	}
	for _, c := range checks {
		if got := canvas.NRGBAAt(5, c.y); got != c.want {
			t.Errorf("pixel (5,%d) = %v, want %v", c.y, got, c.want)
		}
	}
}

func TestCompositePortrait(t *testing.T) {
	// Portrait mapping is side-consistent: first color left, second right.
	trimmed := solidImage(4, 10, green)

	canvas, err := Composite(trimmed, 10, 10, red, blue, Portrait)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := []struct {
		x    int
		want color.NRGBA
	}{
		{0, red},
		{2, red},
		{3, green},
		{6, green},
		{7, blue},
		{9, blue},
	}
	for _, c := range checks {
		if got := canvas.NRGBAAt(c.x, 5); got != c.want {
			t.Errorf("pixel (%d,5) = %v, want %v", c.x, got, c.want)
		}
	}
}

func TestCompositeContainsImage(t *testing.T) {
	trimmed := solidImage(6, 3, green)

	canvas, err := Composite(trimmed, 6, 6, red, blue, Landscape)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every trimmed pixel must land inside the canvas, uncropped.
	for y := 0; y < 3; y++ {
		for x := 0; x < 6; x++ {
			if got := canvas.NRGBAAt(x, y+1); got != green {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y+1, got, green)
			}
		}
	}
}

func TestCompositeOversizedImage(t *testing.T) {
	// An image wider than the canvas cannot be pasted; the compositor must
	// fail rather than clip.
	trimmed := solidImage(12, 4, green)

	_, err := Composite(trimmed, 10, 10, red, blue, Landscape)
	if err == nil {
		t.Fatal("expected error for oversized image")
	}

	var gerr *GeometryError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected GeometryError, got %T: %v", err, err)
	}
	if gerr.Op != "composite" {
		t.Errorf("Op = %q, want composite", gerr.Op)
	}
}

func TestCompositeOpaque(t *testing.T) {
	trimmed := solidImage(4, 2, green)

	canvas, err := Composite(trimmed, 4, 4, red, blue, Landscape)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := canvas.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if canvas.NRGBAAt(x, y).A != 255 {
				t.Fatalf("pixel (%d,%d) not opaque", x, y)
			}
		}
	}
}
