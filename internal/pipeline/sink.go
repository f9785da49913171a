package pipeline

import (
	"context"
	"os"

	"golf-search-go/pkg/storage"
)

// FileSink writes the failure log next to a local source file.
type FileSink struct{}

// WriteLog writes content to the local path.
func (FileSink) WriteLog(_ context.Context, location string, content []byte) error {
	return os.WriteFile(location, content, 0o644)
}

// ObjectSink writes the failure log into the object store bucket the
// source was read from.
type ObjectSink struct {
	Bucket string
}

// WriteLog uploads content as a plain-text object.
func (s ObjectSink) WriteLog(ctx context.Context, location string, content []byte) error {
	return storage.WriteObject(ctx, s.Bucket, location, content, "text/plain")
}
