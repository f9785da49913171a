// Package tasks defines the messages exchanged over the job queue.
package tasks

// EmbeddingJobTask asks the background processor to run a bulk embedding
// load into the named index. Mode is "text" or "textimage".
type EmbeddingJobTask struct {
	JobID     string `json:"jobId"`
	IndexName string `json:"indexName"`
	Mode      string `json:"mode"`
}
