package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/framelab/pillarbox/pkg/models"
)

// JobAPI handles HTTP requests for job submission and status lookup
type JobAPI struct {
	handler *JobHandler
	store   StatusStore
	logger  *zap.Logger
}

// NewJobAPI creates a new job API
func NewJobAPI(handler *JobHandler, store StatusStore, logger *zap.Logger) *JobAPI {
	return &JobAPI{
		handler: handler,
		store:   store,
		logger:  logger,
	}
}

// RegisterRoutes registers the job API routes
func (a *JobAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", a.handleHealth)
	mux.HandleFunc("/jobs", a.handleJobs)
	mux.HandleFunc("/jobs/", a.handleJobStatus)
}

// handleHealth handles GET /health - returns service health status
func (a *JobAPI) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "healthy",
		"service": "pillarbox",
		"version": "1.0.0",
	})
}

// handleJobs handles POST /jobs - submits a job and normalizes synchronously
func (a *JobAPI) handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var job models.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		a.logger.Debug("Rejected malformed job payload", zap.Error(err))
		http.Error(w, "Invalid job payload", http.StatusBadRequest)
		return
	}

	result, err := a.handler.Handle(r.Context(), &job)

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		if result.ErrorKind == models.ErrorKindInvalid {
			w.WriteHeader(http.StatusUnprocessableEntity)
		} else {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}
	if encodeErr := json.NewEncoder(w).Encode(result); encodeErr != nil {
		a.logger.Error("Failed to encode job result", zap.Error(encodeErr))
	}
}

// handleJobStatus handles GET /jobs/{id} - returns the persisted job status
func (a *JobAPI) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	jobID := strings.TrimPrefix(r.URL.Path, "/jobs/")
	if jobID == "" || strings.Contains(jobID, "/") {
		http.Error(w, "Invalid job ID", http.StatusBadRequest)
		return
	}

	if a.store == nil {
		http.Error(w, "Status tracking disabled", http.StatusNotFound)
		return
	}

	status, err := a.store.JobStatus(r.Context(), jobID)
	if err != nil {
		a.logger.Error("Failed to load job status",
			zap.String("job_id", jobID),
			zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if status == nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		a.logger.Error("Failed to encode job status", zap.Error(err))
	}
}
