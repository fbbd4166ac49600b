package letterbox

import "github.com/framelab/pillarbox/pkg/models"

// Orientation classifies which axis of a source image overshoots the target
// ratio.
type Orientation int

const (
	Landscape Orientation = iota
	Portrait
)

func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// Layout captures how a source image's dimensions relate to a target ratio.
// Per axis, multiplier*ratioComponent + overflow == sourceDimension.
type Layout struct {
	Ratio            models.AspectRatio
	WidthMultiplier  int
	HeightMultiplier int
	WidthOverflow    int
	HeightOverflow   int
}

func divmod(base, modulo int) (int, int) {
	return base / modulo, base % modulo
}

// Reconcile computes the per-axis multipliers and overflow for a width×height
// image against the target ratio. Inputs are assumed positive.
func Reconcile(width, height int, ratio models.AspectRatio) Layout {
	wm, wo := divmod(width, ratio.Width)
	hm, ho := divmod(height, ratio.Height)
	return Layout{
		Ratio:            ratio,
		WidthMultiplier:  wm,
		HeightMultiplier: hm,
		WidthOverflow:    wo,
		HeightOverflow:   ho,
	}
}

// Exact reports whether the image already matches the ratio exactly, in which
// case the pipeline short-circuits to a byte-identical copy.
func (l Layout) Exact() bool {
	return l.WidthOverflow == 0 && l.HeightOverflow == 0 &&
		l.WidthMultiplier == l.HeightMultiplier
}

// Orientation returns Landscape when the width multiplier dominates, Portrait
// otherwise. Equal multipliers with leftover overflow resolve to Portrait;
// the tie-break decides which axis an almost-square image is trimmed on.
func (l Layout) Orientation() Orientation {
	if l.WidthMultiplier > l.HeightMultiplier {
		return Landscape
	}
	return Portrait
}

// TrimmedSize returns the image dimensions after overflow is removed. Both
// results are exact multiples of the respective ratio component.
func (l Layout) TrimmedSize() (int, int) {
	return l.WidthMultiplier * l.Ratio.Width, l.HeightMultiplier * l.Ratio.Height
}

// CanvasSize returns the output canvas dimensions: the ratio scaled by the
// multiplier of the dominant axis, so the canvas matches the target ratio
// exactly and contains the trimmed image along its long axis.
func (l Layout) CanvasSize() (int, int) {
	m := l.HeightMultiplier
	if l.Orientation() == Landscape {
		m = l.WidthMultiplier
	}
	return l.Ratio.Width * m, l.Ratio.Height * m
}
