package handlers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/framelab/pillarbox/internal/letterbox"
	"github.com/framelab/pillarbox/pkg/models"
)

// StatusStore persists job lifecycle records. Implemented by the Redis
// client; a nil store disables status tracking.
type StatusStore interface {
	SetJobStatus(ctx context.Context, status *models.JobStatus) error
	JobStatus(ctx context.Context, jobID string) (*models.JobStatus, error)
}

// JobHandler validates normalize requests and dispatches them to the worker
// pool. A non-nil Result is returned even on failure so consumers always have
// something to report.
type JobHandler struct {
	pool   *letterbox.WorkerPool
	store  StatusStore
	logger *zap.Logger
}

// NewJobHandler creates a new job handler
func NewJobHandler(pool *letterbox.WorkerPool, store StatusStore, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		pool:   pool,
		store:  store,
		logger: logger,
	}
}

// Handle processes a single normalize request end to end.
func (h *JobHandler) Handle(ctx context.Context, job *models.Job) (*models.Result, error) {
	job.EnsureID()

	h.logger.Info("Processing normalize request",
		zap.String("job_id", job.ID),
		zap.String("source", job.Source),
		zap.String("ratio", job.Ratio.String()))

	if errs := ValidateJob(*job); len(errs) > 0 {
		err := fmt.Errorf("invalid job: %s (%s)", errs[0].Message, errs[0].Field)
		h.logger.Error("Normalize request rejected",
			zap.String("job_id", job.ID),
			zap.String("field", errs[0].Field),
			zap.String("code", errs[0].Code))
		return h.failed(ctx, job, err, models.ErrorKindInvalid), err
	}

	h.setStatus(ctx, job.ID, models.StateProcessing, nil)

	destination, err := h.pool.Submit(ctx, *job)
	if err != nil {
		kind := letterbox.Classify(err)
		h.logger.Error("Normalize request failed",
			zap.String("job_id", job.ID),
			zap.String("source", job.Source),
			zap.String("error_kind", string(kind)),
			zap.Error(err))
		return h.failed(ctx, job, err, kind), err
	}

	result := &models.Result{
		JobID:       job.ID,
		Destination: destination,
		ProcessedAt: time.Now(),
	}
	h.setStatus(ctx, job.ID, models.StateDone, result)

	h.logger.Info("Normalize request completed",
		zap.String("job_id", job.ID),
		zap.String("destination", destination))

	return result, nil
}

func (h *JobHandler) failed(ctx context.Context, job *models.Job, err error, kind models.ErrorKind) *models.Result {
	result := &models.Result{
		JobID:       job.ID,
		Error:       err.Error(),
		ErrorKind:   kind,
		ProcessedAt: time.Now(),
	}
	h.setStatus(ctx, job.ID, models.StateFailed, result)
	return result
}

func (h *JobHandler) setStatus(ctx context.Context, jobID, state string, result *models.Result) {
	if h.store == nil {
		return
	}
	status := &models.JobStatus{
		JobID:     jobID,
		State:     state,
		Result:    result,
		UpdatedAt: time.Now(),
	}
	if err := h.store.SetJobStatus(ctx, status); err != nil {
		h.logger.Warn("Failed to persist job status",
			zap.String("job_id", jobID),
			zap.String("state", state),
			zap.Error(err))
	}
}
