package model

import "time"

// Job states as tracked in Redis.
const (
	JobStatusQueued    = "queued"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// JobStatus is the operator-visible state of one embedding job.
type JobStatus struct {
	JobID     string    `json:"jobId"`
	IndexName string    `json:"indexName"`
	Mode      string    `json:"mode"`
	Status    string    `json:"status"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}
