package letterbox

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/framelab/pillarbox/pkg/models"
)

// Processor runs the normalize pipeline for single jobs: reconcile the source
// dimensions against the target ratio, trim the overflow, sample edge colors,
// and composite the trimmed image onto a split background sized to an exact
// ratio multiple. Sources that already match the ratio are copied verbatim.
type Processor struct {
	logger *zap.Logger
}

// NewProcessor creates a processor.
func NewProcessor(logger *zap.Logger) *Processor {
	return &Processor{logger: logger}
}

// Normalize processes one job and returns the destination path on success.
func (p *Processor) Normalize(ctx context.Context, job models.Job) (string, error) {
	src, err := imaging.Open(job.Source)
	if err != nil {
		return "", fmt.Errorf("failed to open source image: %w", err)
	}

	bounds := src.Bounds()
	layout := Reconcile(bounds.Dx(), bounds.Dy(), job.Ratio)

	if layout.Exact() {
		p.logger.Debug("Source already matches ratio, copying verbatim",
			zap.String("job_id", job.ID),
			zap.String("source", job.Source))
		if err := copyFile(job.Source, job.Destination); err != nil {
			return "", err
		}
		return job.Destination, nil
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	orientation := layout.Orientation()

	trimmed, err := trim(src, layout)
	if err != nil {
		return "", err
	}

	first, second := EdgeColors(trimmed, orientation)
	canvasWidth, canvasHeight := layout.CanvasSize()

	p.logger.Debug("Compositing normalized image",
		zap.String("job_id", job.ID),
		zap.String("orientation", orientation.String()),
		zap.Int("canvas_width", canvasWidth),
		zap.Int("canvas_height", canvasHeight))

	out, err := Composite(trimmed, canvasWidth, canvasHeight, first, second, orientation)
	if err != nil {
		return "", err
	}

	if err := imaging.Save(out, job.Destination); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return job.Destination, nil
}

// trim removes the overflow rows and columns, split evenly between both
// sides. Integer division truncates, so an odd overflow loses the extra pixel
// on the trailing edge.
func trim(src image.Image, layout Layout) (*image.NRGBA, error) {
	b := src.Bounds()
	width, height := layout.TrimmedSize()
	region := image.Rect(
		b.Min.X+layout.WidthOverflow/2,
		b.Min.Y+layout.HeightOverflow/2,
		b.Min.X+layout.WidthOverflow/2+width,
		b.Min.Y+layout.HeightOverflow/2+height,
	)
	if !region.In(b) {
		return nil, &GeometryError{Op: "trim", Region: region, Bounds: b}
	}
	return imaging.Crop(src, region), nil
}

// copyFile clones source to destination byte for byte.
func copyFile(source, destination string) error {
	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy to destination: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to finalize destination: %w", err)
	}
	return nil
}
