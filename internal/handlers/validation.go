package handlers

import (
	"path/filepath"
	"strings"

	"github.com/framelab/pillarbox/pkg/models"
)

// ValidationError represents a validation error for a specific field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// encodableExtensions are the destination formats the pipeline can write.
var encodableExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
}

// ValidateJob checks a job before it reaches the pipeline. An empty slice
// means the job is acceptable.
func ValidateJob(job models.Job) []ValidationError {
	var errs []ValidationError

	if job.Source == "" {
		errs = append(errs, ValidationError{
			Field:   "source",
			Message: "source path is required",
			Code:    "required",
		})
	}

	if job.Destination == "" {
		errs = append(errs, ValidationError{
			Field:   "destination",
			Message: "destination path is required",
			Code:    "required",
		})
	} else if ext := strings.ToLower(filepath.Ext(job.Destination)); !encodableExtensions[ext] {
		errs = append(errs, ValidationError{
			Field:   "destination",
			Message: "destination extension does not map to an encodable format",
			Code:    "unsupported_format",
		})
	}

	if !job.Ratio.Valid() {
		errs = append(errs, ValidationError{
			Field:   "aspectRatio",
			Message: "aspect ratio components must both be positive",
			Code:    "invalid_ratio",
		})
	}

	return errs
}
