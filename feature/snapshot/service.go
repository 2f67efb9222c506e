package snapshot

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"host-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Target names one working directory to archive.
type Target struct {
	// Name prefixes the uploaded object (e.g. "hostvars", "inventory").
	Name string
	// Path is the working directory to archive.
	Path string
}

// Service archives repository working directories to object storage.
type Service struct {
	client  storage.Client
	bucket  string
	targets []Target
	logger  *zap.Logger
}

// NewService creates a new snapshot service.
func NewService(client storage.Client, bucket string, targets []Target, logger *zap.Logger) *Service {
	return &Service{
		client:  client,
		bucket:  bucket,
		targets: targets,
		logger:  logger,
	}
}

// Archive uploads a tar.gz snapshot of every target working directory and
// returns the uploaded object names. The bucket is created on first use.
func (s *Service) Archive(ctx context.Context) ([]string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	stamp := time.Now().UTC().Format("20060102T150405Z")
	objects := make([]string, 0, len(s.targets))

	for _, target := range s.targets {
		archive, err := tarDirectory(target.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to archive %s: %w", target.Name, err)
		}

		object := fmt.Sprintf("%s/%s-%s.tar.gz", target.Name, target.Name, stamp)
		_, err = s.client.PutObject(ctx, s.bucket, object,
			bytes.NewReader(archive), int64(len(archive)),
			minio.PutObjectOptions{ContentType: "application/gzip"})
		if err != nil {
			return nil, fmt.Errorf("failed to upload snapshot %s: %w", object, err)
		}

		s.logger.Info("Snapshot uploaded",
			zap.String("object", object),
			zap.Int("bytes", len(archive)))
		objects = append(objects, object)
	}

	return objects, nil
}

// List returns the names of all stored snapshots.
func (s *Service) List(ctx context.Context) ([]string, error) {
	objects := []string{}
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if info.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", info.Err)
		}
		objects = append(objects, info.Key)
	}
	return objects, nil
}

// Prune removes old snapshots, keeping the most recent keep per target.
// Object names embed a UTC timestamp so lexical order is creation order.
func (s *Service) Prune(ctx context.Context, keep int) ([]string, error) {
	if keep < 1 {
		return nil, fmt.Errorf("keep must be at least 1, got %d", keep)
	}

	objects, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	byTarget := map[string][]string{}
	for _, object := range objects {
		prefix, _, ok := strings.Cut(object, "/")
		if !ok {
			continue
		}
		byTarget[prefix] = append(byTarget[prefix], object)
	}

	removed := []string{}
	for _, names := range byTarget {
		if len(names) <= keep {
			continue
		}
		sort.Sort(sort.Reverse(sort.StringSlice(names)))
		for _, object := range names[keep:] {
			if err := s.client.RemoveObject(ctx, s.bucket, object, minio.RemoveObjectOptions{}); err != nil {
				return removed, fmt.Errorf("failed to remove snapshot %s: %w", object, err)
			}
			s.logger.Info("Snapshot pruned", zap.String("object", object))
			removed = append(removed, object)
		}
	}

	return removed, nil
}

func (s *Service) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check snapshot bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create snapshot bucket: %w", err)
	}
	return nil
}

// tarDirectory builds a gzipped tarball of a directory tree, skipping the
// .git metadata directory.
func tarDirectory(root string) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = rel
		if err := tw.WriteHeader(header); err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := tw.Close(); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
