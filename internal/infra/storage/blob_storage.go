// Package storage implements file storage on top of a gocloud.dev blob
// bucket. The bucket URL decides the backend, so local disk and cloud object
// storage run the same code.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"forge/config"
	"forge/internal/domain/service"
	"forge/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	// Register the file:// bucket scheme for local development.
	_ "gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

type blobStorage struct {
	bucket *blob.Bucket
}

// New opens the configured bucket and returns a FileStorage bound to it.
// The bucket is closed on shutdown.
func New(params Params) (service.FileStorage, error) {
	if params.Config.Storage == nil || params.Config.Storage.BucketURL == "" {
		return nil, errors.New("storage bucket url must be provided")
	}

	bucket, err := blob.OpenBucket(context.Background(), params.Config.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open storage bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return NewWithBucket(bucket), nil
}

// NewWithBucket wraps an already opened bucket. The caller owns the bucket's
// lifetime.
func NewWithBucket(bucket *blob.Bucket) service.FileStorage {
	return &blobStorage{bucket: bucket}
}

// Save writes the file under keyPrefix. The key gets a random component so
// repeated uploads of the same filename never collide.
func (s *blobStorage) Save(ctx context.Context, keyPrefix, filename, contentType string, content io.Reader) (*service.StoredFile, error) {
	key := path.Join(keyPrefix, uuid.NewString()+"-"+sanitizeFilename(filename))

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open bucket writer")
	}

	size, err := io.Copy(writer, content)
	if err != nil {
		writer.Close()

		return nil, errors.Wrap(err, "failed to write file to bucket")
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to finalize bucket write")
	}

	return &service.StoredFile{
		Key:         key,
		Size:        size,
		ContentType: contentType,
	}, nil
}

// Open returns a reader over the stored file.
func (s *blobStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open stored file")
	}

	return reader, nil
}

// Delete removes the stored file. Deleting a missing key is not an error.
func (s *blobStorage) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrap(err, "failed to delete stored file")
	}

	return nil
}

// sanitizeFilename strips any path components and whitespace from a
// client-supplied filename before it becomes part of a storage key.
func sanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.TrimSpace(base)
	if base == "" || base == "." || base == "/" {
		return "file"
	}

	return strings.ReplaceAll(base, " ", "_")
}
