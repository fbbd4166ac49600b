package models

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Batch is a manifest file listing normalize jobs.
type Batch struct {
	Jobs []Job `json:"jobs" yaml:"jobs"`
}

// ParseJobs reads a bare JSON array of jobs, the format the batch driver
// accepts on stdin.
func ParseJobs(r io.Reader) ([]Job, error) {
	var jobs []Job
	if err := json.NewDecoder(r).Decode(&jobs); err != nil {
		return nil, fmt.Errorf("failed to parse job list: %w", err)
	}
	return jobs, nil
}

// LoadBatch loads a batch manifest from the given path. JSON files hold a
// bare array of jobs; YAML files hold a manifest with a top-level jobs key.
func LoadBatch(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJobs(strings.NewReader(string(data)))
	case ".yaml", ".yml":
		var batch Batch
		if err := yaml.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("failed to parse batch manifest: %w", err)
		}
		return batch.Jobs, nil
	default:
		return nil, fmt.Errorf("unsupported batch file extension: %s", filepath.Ext(path))
	}
}
