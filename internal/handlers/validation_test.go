package handlers

import (
	"testing"

	"github.com/framelab/pillarbox/pkg/models"
)

func TestValidateJob(t *testing.T) {
	valid := models.Job{
		Source:      "in.png",
		Destination: "out.png",
		Ratio:       models.AspectRatio{Width: 16, Height: 9},
	}

	t.Run("accepts a valid job", func(t *testing.T) {
		if errs := ValidateJob(valid); len(errs) != 0 {
			t.Errorf("unexpected errors: %v", errs)
		}
	})

	tests := []struct {
		name      string
		mutate    func(j *models.Job)
		wantField string
		wantCode  string
	}{
		{
			name:      "missing source",
			mutate:    func(j *models.Job) { j.Source = "" },
			wantField: "source",
			wantCode:  "required",
		},
		{
			name:      "missing destination",
			mutate:    func(j *models.Job) { j.Destination = "" },
			wantField: "destination",
			wantCode:  "required",
		},
		{
			name:      "unsupported destination format",
			mutate:    func(j *models.Job) { j.Destination = "out.webp" },
			wantField: "destination",
			wantCode:  "unsupported_format",
		},
		{
			name:      "destination with no extension",
			mutate:    func(j *models.Job) { j.Destination = "out" },
			wantField: "destination",
			wantCode:  "unsupported_format",
		},
		{
			name:      "zero ratio component",
			mutate:    func(j *models.Job) { j.Ratio = models.AspectRatio{Width: 0, Height: 1} },
			wantField: "aspectRatio",
			wantCode:  "invalid_ratio",
		},
		{
			name:      "negative ratio component",
			mutate:    func(j *models.Job) { j.Ratio = models.AspectRatio{Width: 2, Height: -1} },
			wantField: "aspectRatio",
			wantCode:  "invalid_ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := valid
			tt.mutate(&job)

			errs := ValidateJob(job)
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.wantField)
			}
			if errs[0].Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", errs[0].Code, tt.wantCode)
			}
		})
	}

	t.Run("uppercase extension is accepted", func(t *testing.T) {
		job := valid
		job.Destination = "OUT.PNG"
		if errs := ValidateJob(job); len(errs) != 0 {
			t.Errorf("unexpected errors: %v", errs)
		}
	})
}
