package letterbox

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// edgeFraction is the share of the sampled axis each border strip covers.
const edgeFraction = 0.05

// edgeLength returns the strip thickness for an axis, clamped to one pixel so
// very thin images never produce a zero-size crop.
func edgeLength(axis int) int {
	n := int(float64(axis) * edgeFraction)
	if n < 1 {
		n = 1
	}
	return n
}

// EdgeColors samples the two border strips of img and reduces each to one
// representative color. Landscape samples the top and bottom strips across
// the full width; Portrait samples the left and right strips across the full
// height.
func EdgeColors(img image.Image, orientation Orientation) (color.NRGBA, color.NRGBA) {
	b := img.Bounds()

	var first, second image.Rectangle
	if orientation == Landscape {
		n := edgeLength(b.Dy())
		first = image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+n)
		second = image.Rect(b.Min.X, b.Max.Y-n, b.Max.X, b.Max.Y)
	} else {
		n := edgeLength(b.Dx())
		first = image.Rect(b.Min.X, b.Min.Y, b.Min.X+n, b.Max.Y)
		second = image.Rect(b.Max.X-n, b.Min.Y, b.Max.X, b.Max.Y)
	}

	return stripColor(img, first), stripColor(img, second)
}

// stripColor collapses a strip to a single pixel with a nearest-neighbor
// resize. This is a cheap stand-in for an average, not a per-channel mean;
// a real box filter would shift colors at strip boundaries.
func stripColor(img image.Image, strip image.Rectangle) color.NRGBA {
	px := imaging.Resize(imaging.Crop(img, strip), 1, 1, imaging.NearestNeighbor)
	return px.NRGBAAt(0, 0)
}
