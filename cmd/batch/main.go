package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/framelab/pillarbox/internal/config"
	"github.com/framelab/pillarbox/internal/handlers"
	"github.com/framelab/pillarbox/internal/letterbox"
	"github.com/framelab/pillarbox/pkg/models"
)

type outcome struct {
	job         models.Job
	destination string
	err         error
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Jobs come from a manifest path argument or a JSON array on stdin.
	var jobs []models.Job
	if len(os.Args) > 1 {
		jobs, err = models.LoadBatch(os.Args[1])
	} else {
		jobs, err = models.ParseJobs(os.Stdin)
	}
	if err != nil {
		logger.Fatal("Failed to load job list", zap.Error(err))
	}

	processor := letterbox.NewProcessor(logger)
	pool := letterbox.NewWorkerPool(cfg.Workers, processor, cfg.JobTimeout, logger)
	pool.Start()
	defer pool.Stop()

	ctx := context.Background()
	results := make(chan outcome)

	var wg sync.WaitGroup
	for i := range jobs {
		job := jobs[i]
		job.EnsureID()

		if errs := handlers.ValidateJob(job); len(errs) > 0 {
			logger.Error("Skipping invalid job",
				zap.String("job_id", job.ID),
				zap.String("source", job.Source),
				zap.String("field", errs[0].Field),
				zap.String("reason", errs[0].Message))
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			destination, err := pool.Submit(ctx, job)
			results <- outcome{job: job, destination: destination, err: err}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// Failures are job-scoped; the batch always runs to completion.
	for r := range results {
		if r.err != nil {
			logger.Error("Job failed",
				zap.String("job_id", r.job.ID),
				zap.String("source", r.job.Source),
				zap.String("error_kind", string(letterbox.Classify(r.err))),
				zap.Error(r.err))
			continue
		}
		fmt.Println("Image saved to", r.destination)
	}
}
