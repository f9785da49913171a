package source

import (
	"context"
	"fmt"
	"path"

	"golf-search-go/internal/model"
	"golf-search-go/pkg/storage"
)

// ObjectLoader reads golf ball records from a CSV object in MinIO.
type ObjectLoader struct {
	bucket string
	object string
}

// NewObjectLoader creates a loader for bucket/object.
func NewObjectLoader(bucket, object string) *ObjectLoader {
	return &ObjectLoader{bucket: bucket, object: object}
}

// Load fetches the object and parses it.
func (l *ObjectLoader) Load(ctx context.Context) ([]model.GolfBallData, []FailedRow, error) {
	data, err := storage.ReadObject(ctx, l.bucket, l.object)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read source object %s/%s: %w", l.bucket, l.object, err)
	}
	balls, failed := parseRows(string(data))
	return balls, failed, nil
}

// FailureLogLocation places the failure log next to the source object.
func (l *ObjectLoader) FailureLogLocation() string {
	return path.Join(path.Dir(l.object), "failed_rows.log")
}
