package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/idwallet-server/internal/apierror"
	"github.com/dtroode/idwallet-server/internal/logger"
	"github.com/dtroode/idwallet-server/internal/metrics"
	"github.com/dtroode/idwallet-server/internal/model"
	"github.com/dtroode/idwallet-server/internal/qr"
)

// Issuer mints QR-coded credentials.
type Issuer struct {
	store   model.CredentialStore
	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewIssuer(store model.CredentialStore, metrics *metrics.Metrics, logger *logger.Logger) *Issuer {
	return &Issuer{store: store, metrics: metrics, logger: logger}
}

// CheckAvailable reports DuplicateCredential when the account already holds a
// credential of kind or the derived number is taken.
func (i *Issuer) CheckAvailable(ctx context.Context, accountID int64, naturalID string, kind model.IdentityKind) error {
	number := model.CredentialNumber(kind, naturalID)

	if _, err := i.store.GetByAccountAndKind(ctx, accountID, kind); err == nil {
		return apierror.NewErrDuplicateCredential(number)
	} else if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to get credential by account and kind: %w", err)
	}

	if _, err := i.store.GetByNumber(ctx, number); err == nil {
		return apierror.NewErrDuplicateCredential(number)
	} else if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to get credential by number: %w", err)
	}

	return nil
}

// Mint creates the credential for (accountID, kind, naturalID). The lookups
// before the insert are a fast path; the unique constraints decide.
func (i *Issuer) Mint(ctx context.Context, accountID int64, naturalID string, kind model.IdentityKind) (model.Credential, error) {
	number := model.CredentialNumber(kind, naturalID)

	if err := i.CheckAvailable(ctx, accountID, naturalID, kind); err != nil {
		return model.Credential{}, err
	}

	payload, err := qr.BuildPayload(accountID, naturalID, kind)
	if err != nil {
		return model.Credential{}, err
	}
	image, err := qr.Encode(payload)
	if err != nil {
		return model.Credential{}, err
	}

	credential, err := i.store.Create(ctx, model.Credential{
		AccountID: accountID,
		NaturalID: naturalID,
		Kind:      kind,
		Title:     model.CredentialTitle(kind),
		Number:    number,
		QRCode:    image,
		Active:    true,
	})
	if errors.Is(err, model.ErrAlreadyExists) {
		i.logger.Info("Issuer service: credential already minted",
			"account_id", accountID,
			"number", number)
		return model.Credential{}, apierror.NewErrDuplicateCredential(number)
	}
	if err != nil {
		i.logger.Error("Issuer service: failed to create credential",
			"account_id", accountID,
			"number", number,
			"error", err.Error())
		return model.Credential{}, fmt.Errorf("failed to create credential: %w", err)
	}

	i.metrics.IncrementCredentialIssued(string(kind))
	i.logger.Info("Issuer service: credential minted",
		"account_id", accountID,
		"credential_id", credential.ID,
		"number", number)

	return credential, nil
}
