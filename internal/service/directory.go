package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/idwallet-server/internal/apierror"
	"github.com/dtroode/idwallet-server/internal/logger"
	"github.com/dtroode/idwallet-server/internal/model"
)

// NewAccount carries the fields needed to open an account at code issuance.
type NewAccount struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Kind      model.IdentityKind
}

// Directory creates or reuses accounts by email.
type Directory struct {
	store  model.AccountStore
	hasher model.PasswordHasher
	logger *logger.Logger
}

func NewDirectory(store model.AccountStore, hasher model.PasswordHasher, logger *logger.Logger) *Directory {
	return &Directory{store: store, hasher: hasher, logger: logger}
}

// Pending returns the account for the email, creating it unverified when it
// does not exist yet. An existing account is returned as is, verified or not.
// A concurrent create is resolved by re-fetching the winner.
func (d *Directory) Pending(ctx context.Context, params NewAccount) (model.Account, error) {
	account, err := d.store.GetByEmail(ctx, params.Email)
	switch {
	case err == nil:
		return account, nil
	case !errors.Is(err, model.ErrNotFound):
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	hash, err := d.hasher.Hash(params.Password)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := d.store.Create(ctx, model.Account{
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Email:        params.Email,
		PasswordHash: hash,
		Role:         params.Kind.Role(),
		Active:       true,
	})
	if errors.Is(err, model.ErrAlreadyExists) {
		d.logger.Info("Directory service: lost account creation race, reusing",
			"email", params.Email)
		winner, err := d.store.GetByEmail(ctx, params.Email)
		if err != nil {
			return model.Account{}, fmt.Errorf("failed to re-fetch account by email: %w", err)
		}
		return winner, nil
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	d.logger.Info("Directory service: unverified account created",
		"account_id", created.ID,
		"email", created.Email)

	return created, nil
}

// Verify marks the account's email verified and stores the hash of password,
// the one given when the code was redeemed. A verified account is returned
// untouched.
func (d *Directory) Verify(ctx context.Context, account model.Account, password string) (model.Account, error) {
	if account.EmailVerified {
		return account, nil
	}

	hash, err := d.hasher.Hash(password)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	verified, err := d.store.MarkVerified(ctx, account.ID, hash)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to mark account verified: %w", err)
	}

	d.logger.Info("Directory service: account verified",
		"account_id", verified.ID)

	return verified, nil
}

// Bind attaches the identifier to the account. An identifier already held by
// another account is rejected, and so is a second identifier of the same kind.
func (d *Directory) Bind(ctx context.Context, account model.Account, kind model.IdentityKind, naturalID string) (model.Account, error) {
	if bound, ok := account.BoundIdentifier(kind); ok {
		if bound == naturalID {
			return account, nil
		}
		return model.Account{}, apierror.NewErrDuplicateCredential(model.CredentialNumber(kind, bound))
	}

	err := d.store.BindIdentifier(ctx, account.ID, kind, naturalID)
	if errors.Is(err, model.ErrAlreadyExists) {
		return model.Account{}, apierror.NewErrIdentifierOwnedByOther()
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to bind identifier: %w", err)
	}

	value := naturalID
	switch kind {
	case model.KindStudent:
		account.StudentCode = &value
	case model.KindEmployee:
		account.NationalID = &value
	}

	return account, nil
}

// Get returns the account by id.
func (d *Directory) Get(ctx context.Context, id int64) (model.Account, error) {
	account, err := d.store.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Account{}, apierror.NewErrNotFound("account")
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}
	return account, nil
}
