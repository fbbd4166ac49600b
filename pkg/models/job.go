package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// AspectRatio is a target width-to-height proportion as a pair of positive
// integers. On the wire it is a two-element array, [width, height].
type AspectRatio struct {
	Width  int
	Height int
}

// Valid reports whether both components are positive.
func (r AspectRatio) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

func (r AspectRatio) String() string {
	return fmt.Sprintf("%d:%d", r.Width, r.Height)
}

// MarshalJSON encodes the ratio as [width, height].
func (r AspectRatio) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.Width, r.Height})
}

// UnmarshalJSON decodes a [width, height] array.
func (r *AspectRatio) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("aspectRatio must be a [width, height] array: %w", err)
	}
	r.Width, r.Height = pair[0], pair[1]
	return nil
}

// MarshalYAML encodes the ratio as a [width, height] sequence.
func (r AspectRatio) MarshalYAML() (interface{}, error) {
	return [2]int{r.Width, r.Height}, nil
}

// UnmarshalYAML decodes a [width, height] sequence.
func (r *AspectRatio) UnmarshalYAML(value *yaml.Node) error {
	var pair [2]int
	if err := value.Decode(&pair); err != nil {
		return fmt.Errorf("aspectRatio must be a [width, height] sequence: %w", err)
	}
	r.Width, r.Height = pair[0], pair[1]
	return nil
}

// Job is a single normalize request: fit the image at Source to Ratio and
// write the result to Destination. Immutable once constructed.
type Job struct {
	ID          string      `json:"id,omitempty" yaml:"id,omitempty"`
	Source      string      `json:"source" yaml:"source"`
	Destination string      `json:"destination" yaml:"destination"`
	Ratio       AspectRatio `json:"aspectRatio" yaml:"aspectRatio"`
}

// NewJob creates a job with a generated ID.
func NewJob(source, destination string, ratio AspectRatio) Job {
	return Job{
		ID:          uuid.New().String(),
		Source:      source,
		Destination: destination,
		Ratio:       ratio,
	}
}

// EnsureID assigns a fresh ID when the job arrived without one.
func (j *Job) EnsureID() {
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
}

// ErrorKind is the job-scoped error taxonomy reported to callers.
type ErrorKind string

const (
	ErrorKindIO       ErrorKind = "io"
	ErrorKindCodec    ErrorKind = "codec"
	ErrorKindGeometry ErrorKind = "geometry"
	ErrorKindInvalid  ErrorKind = "invalid" // rejected before reaching the pipeline
)

// Result is the outcome of a single job.
type Result struct {
	JobID       string    `json:"jobId"`
	Destination string    `json:"destination,omitempty"`
	Error       string    `json:"error,omitempty"`
	ErrorKind   ErrorKind `json:"errorKind,omitempty"`
	ProcessedAt time.Time `json:"processedAt"`
}

// Job lifecycle states persisted in the status store.
const (
	StateQueued     = "queued"
	StateProcessing = "processing"
	StateDone       = "done"
	StateFailed     = "failed"
)

// JobStatus is the persisted lifecycle record for a job.
type JobStatus struct {
	JobID     string    `json:"jobId"`
	State     string    `json:"state"`
	Result    *Result   `json:"result,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}
