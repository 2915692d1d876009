package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/idwallet-server/internal/apierror"
	"github.com/dtroode/idwallet-server/internal/logger"
	"github.com/dtroode/idwallet-server/internal/model"
)

// MaxPhotoSize is the largest accepted credential photo.
const MaxPhotoSize = 5 << 20

// Credentials serves owner-scoped reads and photo updates of issued credentials.
type Credentials struct {
	store   model.CredentialStore
	storage model.Storage
	logger  *logger.Logger
}

func NewCredentials(store model.CredentialStore, storage model.Storage, logger *logger.Logger) *Credentials {
	return &Credentials{store: store, storage: storage, logger: logger}
}

func (s *Credentials) List(ctx context.Context, accountID int64) ([]model.Credential, error) {
	credentials, err := s.store.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	return credentials, nil
}

// Get returns the credential when accountID owns it. Credentials of other
// accounts are reported as not found.
func (s *Credentials) Get(ctx context.Context, accountID int64, id int64) (model.Credential, error) {
	credential, err := s.store.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Credential{}, apierror.NewErrNotFound("credential")
	}
	if err != nil {
		return model.Credential{}, fmt.Errorf("failed to get credential by id: %w", err)
	}

	if credential.AccountID != accountID {
		return model.Credential{}, apierror.NewErrNotFound("credential")
	}

	return credential, nil
}

// UpdatePhoto stores a new photo and replaces the previous one.
func (s *Credentials) UpdatePhoto(ctx context.Context, accountID int64, id int64, contentType string, reader io.Reader, size int64) (model.Credential, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return model.Credential{}, apierror.NewErrValidation("photo must be an image")
	}
	if size <= 0 {
		return model.Credential{}, apierror.NewErrValidation("photo is empty")
	}
	if size > MaxPhotoSize {
		return model.Credential{}, apierror.NewErrValidation("photo exceeds 5MB")
	}

	credential, err := s.Get(ctx, accountID, id)
	if err != nil {
		return model.Credential{}, err
	}

	key := fmt.Sprintf("credentials/%d/%s", credential.ID, uuid.NewString())
	if err := s.storage.Upload(ctx, key, reader, size, contentType); err != nil {
		s.logger.Error("Credentials service: failed to upload photo",
			"credential_id", credential.ID,
			"error", err.Error())
		return model.Credential{}, fmt.Errorf("failed to upload photo: %w", err)
	}

	updated, err := s.store.UpdatePhoto(ctx, credential.ID, key)
	if err != nil {
		s.removeObject(ctx, key)
		return model.Credential{}, fmt.Errorf("failed to update credential photo: %w", err)
	}

	if credential.PhotoKey != nil {
		s.removeObject(ctx, *credential.PhotoKey)
	}

	s.logger.Info("Credentials service: photo updated",
		"credential_id", credential.ID,
		"size", size)

	return updated, nil
}

// Photo streams the credential photo. The caller closes the reader.
func (s *Credentials) Photo(ctx context.Context, accountID int64, id int64) (io.ReadCloser, error) {
	credential, err := s.Get(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if credential.PhotoKey == nil {
		return nil, apierror.NewErrNotFound("photo")
	}

	reader, err := s.storage.Download(ctx, *credential.PhotoKey)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Warn("Credentials service: photo object missing",
			"credential_id", credential.ID,
			"key", *credential.PhotoKey)
		return nil, apierror.NewErrNotFound("photo")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download from storage: %w", err)
	}

	return reader, nil
}

// Delete removes the credential and its photo.
func (s *Credentials) Delete(ctx context.Context, accountID int64, id int64) error {
	credential, err := s.Get(ctx, accountID, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, credential.ID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apierror.NewErrNotFound("credential")
		}
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	if credential.PhotoKey != nil {
		s.removeObject(ctx, *credential.PhotoKey)
	}

	s.logger.Info("Credentials service: credential deleted",
		"credential_id", credential.ID,
		"account_id", accountID)

	return nil
}

func (s *Credentials) removeObject(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("Credentials service: failed to delete photo object",
			"key", key,
			"error", err.Error())
	}
}
