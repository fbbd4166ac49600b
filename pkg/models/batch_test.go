package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseJobs(t *testing.T) {
	t.Run("parses a JSON array", func(t *testing.T) {
		input := `[
			{"source":"a.png","destination":"b.png","aspectRatio":[2,1]},
			{"source":"c.jpg","destination":"d.jpg","aspectRatio":[1,1]}
		]`

		jobs, err := ParseJobs(strings.NewReader(input))
		if err != nil {
			t.Fatalf("ParseJobs: %v", err)
		}
		if len(jobs) != 2 {
			t.Fatalf("got %d jobs, want 2", len(jobs))
		}
		if jobs[0].Ratio.Width != 2 || jobs[1].Source != "c.jpg" {
			t.Errorf("unexpected jobs: %+v", jobs)
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		if _, err := ParseJobs(strings.NewReader("{not a list}")); err == nil {
			t.Error("expected error for malformed input")
		}
	})
}

func TestLoadBatch(t *testing.T) {
	dir := t.TempDir()

	t.Run("JSON file holds a bare array", func(t *testing.T) {
		path := filepath.Join(dir, "batch.json")
		content := `[{"source":"a.png","destination":"b.png","aspectRatio":[16,9]}]`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write batch: %v", err)
		}

		jobs, err := LoadBatch(path)
		if err != nil {
			t.Fatalf("LoadBatch: %v", err)
		}
		if len(jobs) != 1 || jobs[0].Ratio.Width != 16 {
			t.Errorf("unexpected jobs: %+v", jobs)
		}
	})

	t.Run("YAML file holds a manifest", func(t *testing.T) {
		path := filepath.Join(dir, "batch.yaml")
		content := "jobs:\n  - source: a.png\n    destination: b.png\n    aspectRatio: [4, 3]\n  - source: c.png\n    destination: d.png\n    aspectRatio: [1, 1]\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write batch: %v", err)
		}

		jobs, err := LoadBatch(path)
		if err != nil {
			t.Fatalf("LoadBatch: %v", err)
		}
		if len(jobs) != 2 {
			t.Fatalf("got %d jobs, want 2", len(jobs))
		}
		if jobs[0].Ratio != (AspectRatio{Width: 4, Height: 3}) {
			t.Errorf("Ratio = %v, want 4:3", jobs[0].Ratio)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "batch.txt")
		os.WriteFile(path, []byte("whatever"), 0644)

		if _, err := LoadBatch(path); err == nil {
			t.Error("expected error for unsupported extension")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadBatch(filepath.Join(dir, "nope.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
