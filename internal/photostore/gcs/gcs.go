package gcs

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"cloud.google.com/go/storage"
)

// GCSPhotoStore stores photos as objects in a Cloud Storage bucket. The object
// name doubles as its id.
type GCSPhotoStore struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCSPhotoStore(client *storage.Client, bucket, prefix string) *GCSPhotoStore {
	return &GCSPhotoStore{client: client, bucket: bucket, prefix: prefix}
}

func (s *GCSPhotoStore) Create(ctx context.Context, name, mimeType string, r io.Reader) (string, error) {
	objectPath := s.prefix + name
	w := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = mimeType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs close failed: %w", err)
	}
	return objectPath, nil
}

// Share adds an allUsers READER entry. Buckets with uniform bucket-level
// access reject object ACLs; grant public access on the bucket instead.
func (s *GCSPhotoStore) Share(ctx context.Context, id string) error {
	acl := s.client.Bucket(s.bucket).Object(id).ACL()
	if err := acl.Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return fmt.Errorf("gcs acl update failed for %s: %w", id, err)
	}
	return nil
}

func (s *GCSPhotoStore) PublicURL(id string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, (&url.URL{Path: id}).EscapedPath())
}

// Close closes the GCS client.
func (s *GCSPhotoStore) Close() error {
	return s.client.Close()
}
