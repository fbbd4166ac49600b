package letterbox

import (
	"image"
	"image/color"
	"image/draw"
)

// Composite paints a two-tone split background of the given canvas size and
// copies the trimmed image onto it, centered. The split runs perpendicular to
// the orientation's long axis.
//
// Landscape halves are cross-wired: the top-strip color fills the bottom half
// (rows y > height/2) and the bottom-strip color fills the top. Portrait is
// side-consistent: the left-strip color fills columns x < width/2.
func Composite(trimmed image.Image, canvasWidth, canvasHeight int, first, second color.NRGBA, orientation Orientation) (*image.NRGBA, error) {
	canvas := image.NewNRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))

	if orientation == Landscape {
		split := canvasHeight/2 + 1
		fill(canvas, image.Rect(0, 0, canvasWidth, split), second)
		fill(canvas, image.Rect(0, split, canvasWidth, canvasHeight), first)
	} else {
		split := canvasWidth / 2
		fill(canvas, image.Rect(0, 0, split, canvasHeight), first)
		fill(canvas, image.Rect(split, 0, canvasWidth, canvasHeight), second)
	}

	tb := trimmed.Bounds()
	offsetX := saturatingHalf(canvasWidth - tb.Dx())
	offsetY := saturatingHalf(canvasHeight - tb.Dy())

	target := image.Rect(offsetX, offsetY, offsetX+tb.Dx(), offsetY+tb.Dy())
	if !target.In(canvas.Bounds()) {
		return nil, &GeometryError{Op: "composite", Region: target, Bounds: canvas.Bounds()}
	}
	draw.Draw(canvas, target, trimmed, tb.Min, draw.Src)

	return canvas, nil
}

func fill(dst *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	draw.Draw(dst, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// saturatingHalf halves a gap, degrading to a zero offset instead of going
// negative when the canvas is narrower than the image on one axis.
func saturatingHalf(gap int) int {
	if gap < 0 {
		return 0
	}
	return gap / 2
}
