package letterbox

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/framelab/pillarbox/pkg/models"
)

// NormalizeJob is a queued pipeline run awaiting a worker.
type NormalizeJob struct {
	Job    models.Job
	Result chan *NormalizeResult
}

// NormalizeResult contains the outcome of a pipeline run.
type NormalizeResult struct {
	Destination string
	Error       error
}

// WorkerPool fans normalize jobs out across a fixed set of workers. Jobs are
// fully independent, so workers share nothing but the queue.
type WorkerPool struct {
	workers   int
	jobQueue  chan *NormalizeJob
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	logger    *zap.Logger
	processor *Processor
	timeout   int // per-job timeout in seconds
}

// NewWorkerPool creates a worker pool with the specified number of workers.
func NewWorkerPool(workers int, processor *Processor, timeout int, logger *zap.Logger) *WorkerPool {
	if workers <= 0 {
		workers = 4 // default to 4 workers
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		workers:   workers,
		jobQueue:  make(chan *NormalizeJob, workers*2), // buffer for 2x workers
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger,
		processor: processor,
		timeout:   timeout,
	}
}

// Start launches all worker goroutines
func (wp *WorkerPool) Start() {
	wp.logger.Info("Starting normalize worker pool",
		zap.Int("workers", wp.workers),
		zap.Int("queue_size", cap(wp.jobQueue)))

	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop gracefully shuts down the worker pool
func (wp *WorkerPool) Stop() {
	wp.logger.Info("Stopping normalize worker pool")
	wp.cancel()
	close(wp.jobQueue)
	wp.wg.Wait()
	wp.logger.Info("Normalize worker pool stopped")
}

// Submit queues a job on the pool and blocks until its result is available.
// Returns the destination path on success.
func (wp *WorkerPool) Submit(ctx context.Context, job models.Job) (string, error) {
	resultChan := make(chan *NormalizeResult, 1)

	queued := &NormalizeJob{
		Job:    job,
		Result: resultChan,
	}

	select {
	case wp.jobQueue <- queued:
		// Job submitted
	case <-ctx.Done():
		return "", ctx.Err()
	case <-wp.ctx.Done():
		return "", fmt.Errorf("worker pool is shutting down")
	}

	// Wait for result
	select {
	case result := <-resultChan:
		return result.Destination, result.Error
	case <-ctx.Done():
		return "", ctx.Err()
	case <-wp.ctx.Done():
		return "", fmt.Errorf("worker pool is shutting down")
	}
}

// worker is the main loop for a single worker
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	wp.logger.Debug("Normalize worker started", zap.Int("worker_id", id))

	for {
		select {
		case job, ok := <-wp.jobQueue:
			if !ok {
				wp.logger.Debug("Normalize worker stopping (queue closed)", zap.Int("worker_id", id))
				return
			}
			wp.processJob(id, job)
		case <-wp.ctx.Done():
			wp.logger.Debug("Normalize worker stopping (context cancelled)", zap.Int("worker_id", id))
			return
		}
	}
}

// processJob handles a single normalize job
func (wp *WorkerPool) processJob(workerID int, queued *NormalizeJob) {
	wp.logger.Debug("Worker processing job",
		zap.Int("worker_id", workerID),
		zap.String("job_id", queued.Job.ID))

	ctx, cancel := context.WithTimeout(wp.ctx, time.Duration(wp.timeout)*time.Second)
	defer cancel()

	destination, err := wp.processor.Normalize(ctx, queued.Job)

	queued.Result <- &NormalizeResult{
		Destination: destination,
		Error:       err,
	}
	close(queued.Result)

	if err != nil {
		wp.logger.Debug("Worker completed job with error",
			zap.Int("worker_id", workerID),
			zap.String("job_id", queued.Job.ID),
			zap.Error(err))
	} else {
		wp.logger.Debug("Worker completed job successfully",
			zap.Int("worker_id", workerID),
			zap.String("job_id", queued.Job.ID),
			zap.String("destination", destination))
	}
}
