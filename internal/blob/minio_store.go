package blob

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

// MinIOStore adapts minio.Client to the Store interface.
type MinIOStore struct {
	client     *minio.Client
	bucket     string
	presignTTL time.Duration
}

// NewMinIOStore constructs an adapter over the given bucket.
func NewMinIOStore(client *minio.Client, bucket string, presignTTL time.Duration) *MinIOStore {
	return &MinIOStore{client: client, bucket: bucket, presignTTL: presignTTL}
}

func (s *MinIOStore) Put(ctx context.Context, objectPath string, reader io.Reader, size int64, contentType string) error {
	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := s.client.PutObject(ctx, s.bucket, objectPath, reader, size, opts); err != nil {
		return fmt.Errorf("put object %q: %w", objectPath, err)
	}
	return nil
}

func (s *MinIOStore) Get(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectPath, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", objectPath, err)
	}

	// GetObject is lazy; Stat forces the lookup so a missing key surfaces
	// here instead of on first read.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("stat object %q: %w", objectPath, err)
	}

	return obj, nil
}

func (s *MinIOStore) Remove(ctx context.Context, objectPath string) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectPath, minio.RemoveObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("remove object %q: %w", objectPath, err)
	}
	return nil
}

func (s *MinIOStore) Ping(ctx context.Context) error {
	if _, err := s.client.BucketExists(ctx, s.bucket); err != nil {
		return fmt.Errorf("ping minio: %w", err)
	}
	return nil
}

// PresignGet mints a time-limited direct download URL for the object.
func (s *MinIOStore) PresignGet(ctx context.Context, objectPath string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectPath, s.presignTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign object %q: %w", objectPath, err)
	}
	return u.String(), nil
}
