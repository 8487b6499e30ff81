// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small Client interface covering what the
// integrity feature needs: objects under a prefix are a byte source to fingerprint,
// baseline CSVs can be read from the bucket, and the CLI can export a generated
// baseline into it. Both AWS S3 and self-hosted MinIO are supported.
//
// # Client Interface
//
// The Client interface makes storage interactions mockable in unit tests
// (see core/storage/mocks).
//
// # Helpers
//
//   - ListKeys: drains a recursive listing into sorted keys, with an optional extension filter.
//   - EnsureBucket: creates the bucket before an export when it is missing.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	keys, err := storage.ListKeys(ctx, client, cfg.Storage.Bucket, "releases/", ".tar.gz")
package storage
