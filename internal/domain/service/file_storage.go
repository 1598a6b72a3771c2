package service

import (
	"context"
	"io"
)

// StoredFile describes an uploaded file after it has been written to storage.
type StoredFile struct {
	Key         string // Storage key, persisted on the owning record.
	Size        int64
	ContentType string
}

// FileStorage defines the interface for binary file storage. Implementations
// sit on top of a blob bucket so the same code serves local disk in
// development and cloud object storage in production.
type FileStorage interface {
	// Save writes the file under the given key prefix and returns its
	// storage descriptor. The final key includes a random component so
	// repeated uploads of the same filename never collide.
	Save(ctx context.Context, keyPrefix, filename, contentType string, content io.Reader) (*StoredFile, error)

	// Open returns a reader over the stored file.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the stored file. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
