package storage

import "context"

// ObjectStorage captures the minimal operations needed to archive raw
// uploaded files to an S3-compatible bucket.
type ObjectStorage interface {
	UploadObject(ctx context.Context, key string, data []byte, contentType string) error
}

// Noop discards archives; used when archiving is disabled in config.
type Noop struct{}

func (Noop) UploadObject(ctx context.Context, key string, data []byte, contentType string) error {
	return nil
}
