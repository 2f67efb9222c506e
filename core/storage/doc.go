// Package storage provides an abstraction layer for the object storage
// service that snapshot archives are uploaded to.
//
// It wraps the MinIO Go client behind a small interface so storage
// interactions can be mocked in unit tests (see core/storage/mocks). The
// abstraction supports both AWS S3 and self-hosted MinIO instances.
//
// # Operations
//
//   - BucketExists / MakeBucket: verify or create the snapshot bucket.
//   - PutObject: upload a snapshot archive.
//   - ListObjects: enumerate stored snapshots.
//   - RemoveObject: delete a snapshot.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	exists, err := client.BucketExists(ctx, cfg.Bucket)
package storage
