package service

import (
	"context"
	"fmt"

	"golf-search-go/internal/model"
	"golf-search-go/internal/repository"
	"golf-search-go/pkg/kafka"
	"golf-search-go/pkg/log"
	"golf-search-go/pkg/tasks"

	"github.com/google/uuid"
)

// EmbeddingService enqueues bulk embedding jobs and reports their progress.
type EmbeddingService interface {
	EnqueueJob(ctx context.Context, indexName string, mode model.IndexMode) (*model.JobStatus, error)
	GetJobStatus(ctx context.Context, jobID string) (*model.JobStatus, error)
}

type embeddingService struct {
	jobStatusRepo repository.JobStatusRepository
}

// NewEmbeddingService creates an EmbeddingService.
func NewEmbeddingService(jobStatusRepo repository.JobStatusRepository) EmbeddingService {
	return &embeddingService{jobStatusRepo: jobStatusRepo}
}

// EnqueueJob records a queued status and hands the job to the queue. The
// status is written first so a caller polling right after the 202 never sees
// a missing job.
func (s *embeddingService) EnqueueJob(ctx context.Context, indexName string, mode model.IndexMode) (*model.JobStatus, error) {
	if mode != model.ModeText && mode != model.ModeTextImage {
		return nil, fmt.Errorf("unknown index mode %q", mode)
	}

	status := model.JobStatus{
		JobID:     uuid.NewString(),
		IndexName: indexName,
		Mode:      string(mode),
		Status:    model.JobStatusQueued,
	}
	if err := s.jobStatusRepo.Save(ctx, status); err != nil {
		return nil, fmt.Errorf("failed to record job status: %w", err)
	}

	task := tasks.EmbeddingJobTask{
		JobID:     status.JobID,
		IndexName: indexName,
		Mode:      string(mode),
	}
	if err := kafka.ProduceEmbeddingJob(task); err != nil {
		return nil, fmt.Errorf("failed to enqueue embedding job: %w", err)
	}

	log.Infof("[EmbeddingService] job %s queued for index %q, mode: %s", status.JobID, indexName, mode)
	return &status, nil
}

func (s *embeddingService) GetJobStatus(ctx context.Context, jobID string) (*model.JobStatus, error) {
	return s.jobStatusRepo.Get(ctx, jobID)
}
