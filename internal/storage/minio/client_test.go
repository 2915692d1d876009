package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/idwallet-server/internal/model"
)

// fakeObjects records calls instead of talking to a bucket.
type fakeObjects struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	putErr  error
	putKey  string
	putSize int64
	putOpts minioLib.PutObjectOptions
	putBody []byte

	getRC   io.ReadCloser
	getErr  error
	getKeys []string

	removeErr error
	removed   []string

	statErr error
}

func (f *fakeObjects) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeObjects) MakeBucket(_ context.Context, bucket string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = bucket
	return f.makeBucketErr
}

func (f *fakeObjects) PutObject(_ context.Context, _ string, key string, reader io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if f.putErr != nil {
		return minioLib.UploadInfo{}, f.putErr
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return minioLib.UploadInfo{}, err
	}
	f.putKey, f.putSize, f.putOpts, f.putBody = key, size, opts, body
	return minioLib.UploadInfo{Key: key, Size: size}, nil
}

func (f *fakeObjects) GetObject(_ context.Context, _ string, key string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	f.getKeys = append(f.getKeys, key)
	return f.getRC, f.getErr
}

func (f *fakeObjects) RemoveObject(_ context.Context, _ string, key string, _ minioLib.RemoveObjectOptions) error {
	f.removed = append(f.removed, key)
	return f.removeErr
}

func (f *fakeObjects) StatObject(_ context.Context, _ string, key string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	return minioLib.ObjectInfo{Key: key}, f.statErr
}

var errNoSuchKey = minioLib.ErrorResponse{Code: "NoSuchKey"}

func TestNewPhotoStore(t *testing.T) {
	ctx := context.Background()

	t.Run("bucket exists", func(t *testing.T) {
		api := &fakeObjects{bucketExists: true}
		s, err := newPhotoStore(ctx, api, "photos")
		require.NoError(t, err)
		assert.Equal(t, "photos", s.bucket)
		assert.Empty(t, api.madeBucket)
	})

	t.Run("creates bucket", func(t *testing.T) {
		api := &fakeObjects{}
		_, err := newPhotoStore(ctx, api, "photos")
		require.NoError(t, err)
		assert.Equal(t, "photos", api.madeBucket)
	})

	t.Run("bucket check fails", func(t *testing.T) {
		s, err := newPhotoStore(ctx, &fakeObjects{bucketExistsErr: errors.New("boom")}, "photos")
		assert.Nil(t, s)
		require.ErrorContains(t, err, "failed to check photo bucket photos")
	})

	t.Run("bucket creation fails", func(t *testing.T) {
		s, err := newPhotoStore(ctx, &fakeObjects{makeBucketErr: errors.New("fail")}, "photos")
		assert.Nil(t, s)
		require.ErrorContains(t, err, "failed to create photo bucket photos")
	})
}

func TestPhotoStore_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeObjects{}
		s := &PhotoStore{api: api, bucket: "photos"}

		err := s.Upload(ctx, "credentials/1/a", bytes.NewReader([]byte("jpeg")), 4, "image/jpeg")

		require.NoError(t, err)
		assert.Equal(t, "credentials/1/a", api.putKey)
		assert.Equal(t, int64(4), api.putSize)
		assert.Equal(t, "image/jpeg", api.putOpts.ContentType)
		assert.Equal(t, photoCacheControl, api.putOpts.CacheControl)
		assert.Equal(t, []byte("jpeg"), api.putBody)
	})

	t.Run("error", func(t *testing.T) {
		s := &PhotoStore{api: &fakeObjects{putErr: errors.New("put-fail")}, bucket: "photos"}

		err := s.Upload(ctx, "k", bytes.NewReader([]byte("data")), 4, "image/png")

		require.ErrorContains(t, err, "failed to upload photo k")
	})
}

func TestPhotoStore_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeObjects{getRC: io.NopCloser(bytes.NewReader([]byte("abc")))}
		s := &PhotoStore{api: api, bucket: "photos"}

		rc, err := s.Download(ctx, "k")
		require.NoError(t, err)
		defer rc.Close()

		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), body)
	})

	t.Run("missing photo", func(t *testing.T) {
		api := &fakeObjects{statErr: errNoSuchKey}
		s := &PhotoStore{api: api, bucket: "photos"}

		rc, err := s.Download(ctx, "k")

		assert.Nil(t, rc)
		require.ErrorIs(t, err, model.ErrNotFound)
		assert.Empty(t, api.getKeys)
	})

	t.Run("stat error", func(t *testing.T) {
		s := &PhotoStore{api: &fakeObjects{statErr: errors.New("stat-fail")}, bucket: "photos"}

		_, err := s.Download(ctx, "k")

		require.ErrorContains(t, err, "failed to stat photo k")
		assert.NotErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("get error", func(t *testing.T) {
		s := &PhotoStore{api: &fakeObjects{getErr: errors.New("get-fail")}, bucket: "photos"}

		rc, err := s.Download(ctx, "k")

		assert.Nil(t, rc)
		require.ErrorContains(t, err, "failed to open photo k")
	})
}

func TestPhotoStore_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		removeErr error
		wantErr   bool
	}{
		{name: "success"},
		{name: "already gone", removeErr: errNoSuchKey},
		{name: "error", removeErr: errors.New("remove-fail"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeObjects{removeErr: tt.removeErr}
			s := &PhotoStore{api: api, bucket: "photos"}

			err := s.Delete(ctx, "k")

			if tt.wantErr {
				require.ErrorContains(t, err, "failed to delete photo k")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, []string{"k"}, api.removed)
		})
	}
}

