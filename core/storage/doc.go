// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so the report archive can
// be tested against the mock in core/storage/mocks. Both AWS S3 and self-hosted MinIO
// are supported.
//
// # Operations
//
//   - BucketExists / MakeBucket: provision the report bucket.
//   - PutObject: upload a run report.
//   - GetObject: read a report back.
//   - ListObjects / RemoveObjects: enumerate and prune old reports.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
