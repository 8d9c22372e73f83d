// Package storage persists uploaded bootcamp photos. The write completes (or
// fails) before the HTTP response is sent; there is no fire-and-forget path.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	gcs "cloud.google.com/go/storage"

	"github.com/devlaunch/bootcamper/pkg/helpers"
)

// PhotoStore writes an uploaded photo and returns a reference usable by
// clients (a bare filename for local storage, a public URL for GCS).
type PhotoStore interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// LocalPhotoStore writes photos under a configured directory.
type LocalPhotoStore struct {
	Dir string
}

func NewLocalPhotoStore(dir string) *LocalPhotoStore {
	return &LocalPhotoStore{Dir: dir}
}

func (s *LocalPhotoStore) Save(_ context.Context, filename, _ string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(s.Dir, filepath.Base(filename))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return filepath.Base(filename), nil
}

// GCSPhotoStore writes photos to a Google Cloud Storage bucket.
type GCSPhotoStore struct {
	Client *gcs.Client
	Bucket string
}

func NewGCSPhotoStore(client *gcs.Client, bucket string) *GCSPhotoStore {
	return &GCSPhotoStore{Client: client, Bucket: bucket}
}

func (s *GCSPhotoStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	object := "photos/" + filepath.Base(filename)
	return helpers.UploadObject(ctx, s.Client, s.Bucket, object, contentType, r)
}
