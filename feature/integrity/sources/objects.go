package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"file-integrity/core/fingerprint"
	"file-integrity/core/storage"

	"github.com/minio/minio-go/v7"
)

// ErrBucketNotFound is returned when the source bucket does not exist.
var ErrBucketNotFound = errors.New("bucket not found")

// Objects returns one entry per object under prefix, optionally keeping only keys
// ending in extension. Entries are named by their key relative to prefix.
func Objects(ctx context.Context, client storage.Client, bucket, prefix, extension string) ([]fingerprint.Entry, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}

	keys, err := storage.ListKeys(ctx, client, bucket, prefix, extension)
	if err != nil {
		return nil, err
	}

	entries := make([]fingerprint.Entry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, fingerprint.Entry{
			Name: ObjectName(prefix, key),
			Open: func(ctx context.Context) (io.ReadCloser, error) {
				return client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
			},
		})
	}
	return entries, nil
}

// ObjectName strips prefix and any leading slash from key.
// A key equal to the prefix keeps its full name.
func ObjectName(prefix, key string) string {
	name := strings.TrimLeft(strings.TrimPrefix(key, prefix), "/")
	if name == "" {
		return key
	}
	return name
}
