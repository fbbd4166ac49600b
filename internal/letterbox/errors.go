package letterbox

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"

	"github.com/framelab/pillarbox/pkg/models"
)

// GeometryError reports a computed crop or composite region falling outside
// the buffer it targets. Correct reconciliation arithmetic never produces
// one; if it shows up the job is failed rather than clamped, since clamping
// would silently corrupt output geometry.
type GeometryError struct {
	Op     string
	Region image.Rectangle
	Bounds image.Rectangle
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%s region %v outside bounds %v", e.Op, e.Region, e.Bounds)
}

// Classify maps a job error onto the reported taxonomy: filesystem problems
// are I/O failures, geometry violations are their own kind, and everything
// else from the raster path is a decode/encode failure.
func Classify(err error) models.ErrorKind {
	var gerr *GeometryError
	if errors.As(err, &gerr) {
		return models.ErrorKindGeometry
	}
	var perr *fs.PathError
	if errors.As(err, &perr) {
		return models.ErrorKindIO
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return models.ErrorKindIO
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return models.ErrorKindIO
	}
	return models.ErrorKindCodec
}
