package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golf-search-go/internal/model"

	"github.com/go-redis/redis/v8"
)

// ErrJobNotFound means no status record exists for the job id.
var ErrJobNotFound = errors.New("job not found")

const jobStatusTTL = 24 * time.Hour

// JobStatusRepository tracks embedding job progress in Redis.
type JobStatusRepository interface {
	Save(ctx context.Context, status model.JobStatus) error
	Get(ctx context.Context, jobID string) (*model.JobStatus, error)
}

type jobStatusRepository struct {
	rdb *redis.Client
}

// NewJobStatusRepository creates a JobStatusRepository.
func NewJobStatusRepository(rdb *redis.Client) JobStatusRepository {
	return &jobStatusRepository{rdb: rdb}
}

func jobKey(jobID string) string {
	return fmt.Sprintf("embedjob:%s", jobID)
}

func (r *jobStatusRepository) Save(ctx context.Context, status model.JobStatus) error {
	status.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, jobKey(status.JobID), data, jobStatusTTL).Err()
}

func (r *jobStatusRepository) Get(ctx context.Context, jobID string) (*model.JobStatus, error) {
	data, err := r.rdb.Get(ctx, jobKey(jobID)).Bytes()
	if err == redis.Nil {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}

	var status model.JobStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
