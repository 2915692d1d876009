package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/idwallet-server/internal/apierror"
	"github.com/dtroode/idwallet-server/internal/metrics"
	"github.com/dtroode/idwallet-server/internal/mocks"
	"github.com/dtroode/idwallet-server/internal/model"
	"github.com/dtroode/idwallet-server/internal/repository/memory"
	"github.com/dtroode/idwallet-server/internal/testutil"
)

func TestIssuer_Mint(t *testing.T) {
	ctx := context.Background()

	t.Run("mints once per kind", func(t *testing.T) {
		issuer := NewIssuer(memory.NewCredentialRepository(), metrics.NewNoop(), testutil.MakeNoopLogger())

		credential, err := issuer.Mint(ctx, 1, "s001", model.KindStudent)
		require.NoError(t, err)
		assert.Equal(t, "EST-S001", credential.Number)
		assert.True(t, credential.Active)
		assert.NotEmpty(t, credential.QRCode)

		_, err = issuer.Mint(ctx, 1, "s001", model.KindStudent)
		requireCode(t, err, apierror.CodeDuplicateCredential)
	})

	t.Run("number taken by another account", func(t *testing.T) {
		issuer := NewIssuer(memory.NewCredentialRepository(), metrics.NewNoop(), testutil.MakeNoopLogger())

		_, err := issuer.Mint(ctx, 1, "0999999999", model.KindEmployee)
		require.NoError(t, err)

		err = issuer.CheckAvailable(ctx, 2, "0999999999", model.KindEmployee)
		requireCode(t, err, apierror.CodeDuplicateCredential)
	})

	t.Run("unique constraint wins the race", func(t *testing.T) {
		store := mocks.NewCredentialStore(t)
		store.On("GetByAccountAndKind", ctx, int64(1), model.KindStudent).Return(model.Credential{}, model.ErrNotFound).Once()
		store.On("GetByNumber", ctx, "EST-S001").Return(model.Credential{}, model.ErrNotFound).Once()
		store.On("Create", ctx, mock.AnythingOfType("model.Credential")).Return(model.Credential{}, model.ErrAlreadyExists).Once()

		_, err := NewIssuer(store, metrics.NewNoop(), testutil.MakeNoopLogger()).Mint(ctx, 1, "S001", model.KindStudent)

		requireCode(t, err, apierror.CodeDuplicateCredential)
	})

	t.Run("lookup failure", func(t *testing.T) {
		store := mocks.NewCredentialStore(t)
		store.On("GetByAccountAndKind", ctx, int64(1), model.KindStudent).Return(model.Credential{}, errors.New("boom")).Once()

		_, err := NewIssuer(store, metrics.NewNoop(), testutil.MakeNoopLogger()).Mint(ctx, 1, "S001", model.KindStudent)

		require.Error(t, err)
		_, isAPI := apierror.As(err)
		assert.False(t, isAPI)
	})
}
