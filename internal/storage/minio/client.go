// Package minio stores credential photos in an S3 compatible bucket.
package minio

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	"github.com/dtroode/idwallet-server/internal/model"
)

const (
	noSuchKey = "NoSuchKey"
	// photoCacheControl keeps photos out of shared caches.
	photoCacheControl = "private, max-age=0"
)

var _ model.Storage = (*PhotoStore)(nil)

// objectAPI is the subset of *minio.Client the photo store calls.
type objectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// sdkClient narrows GetObject's *minio.Object to io.ReadCloser.
type sdkClient struct {
	*minio.Client
}

func (c sdkClient) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := c.Client.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// PhotoStore keeps one object per uploaded credential photo.
type PhotoStore struct {
	api    objectAPI
	bucket string
}

// NewClient wraps a *minio.Client and makes sure the photo bucket exists.
func NewClient(ctx context.Context, client *minio.Client, bucket string) (*PhotoStore, error) {
	return newPhotoStore(ctx, sdkClient{Client: client}, bucket)
}

func newPhotoStore(ctx context.Context, api objectAPI, bucket string) (*PhotoStore, error) {
	exists, err := api.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check photo bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := api.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create photo bucket %s: %w", bucket, err)
		}
	}

	return &PhotoStore{api: api, bucket: bucket}, nil
}

// Upload stores a photo of exactly size bytes under key.
func (s *PhotoStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	opts := minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: photoCacheControl,
	}
	if _, err := s.api.PutObject(ctx, s.bucket, key, reader, size, opts); err != nil {
		return fmt.Errorf("failed to upload photo %s: %w", key, err)
	}
	return nil
}

// Download opens the photo under key. GetObject is lazy, so the object is
// stat'ed first to report a missing photo as model.ErrNotFound.
func (s *PhotoStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if _, err := s.stat(ctx, key); err != nil {
		return nil, err
	}

	obj, err := s.api.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open photo %s: %w", key, err)
	}
	return obj, nil
}

// Delete removes the photo. Removing a missing key succeeds.
func (s *PhotoStore) Delete(ctx context.Context, key string) error {
	err := s.api.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil && !isMissing(err) {
		return fmt.Errorf("failed to delete photo %s: %w", key, err)
	}
	return nil
}

func (s *PhotoStore) stat(ctx context.Context, key string) (minio.ObjectInfo, error) {
	info, err := s.api.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == noSuchKey {
			return minio.ObjectInfo{}, fmt.Errorf("photo %s: %w", key, model.ErrNotFound)
		}
		return minio.ObjectInfo{}, fmt.Errorf("failed to stat photo %s: %w", key, err)
	}
	return info, nil
}

func isMissing(err error) bool {
	return minio.ToErrorResponse(err).Code == noSuchKey || errors.Is(err, model.ErrNotFound)
}
