package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/idwallet-server/internal/model"
)

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	r := NewAccountRepository()

	saved, err := r.Create(ctx, model.Account{Email: "Ana@Uni.edu", Role: model.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)

	_, err = r.Create(ctx, model.Account{Email: "ana@uni.EDU"})
	require.ErrorIs(t, err, model.ErrAlreadyExists)

	got, err := r.GetByEmail(ctx, "ANA@uni.edu")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)

	require.NoError(t, r.BindIdentifier(ctx, saved.ID, model.KindStudent, "S1"))
	got, err = r.GetByIdentifier(ctx, model.KindStudent, "S1")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)

	other, err := r.Create(ctx, model.Account{Email: "other@uni.edu"})
	require.NoError(t, err)
	require.ErrorIs(t, r.BindIdentifier(ctx, other.ID, model.KindStudent, "S1"), model.ErrAlreadyExists)

	verified, err := r.MarkVerified(ctx, saved.ID, "hash")
	require.NoError(t, err)
	assert.True(t, verified.EmailVerified)
	assert.True(t, verified.Active)

	_, err = r.GetByID(ctx, 42)
	require.ErrorIs(t, err, model.ErrNotFound)
	_, err = r.MarkVerified(ctx, 42, "x")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestIdentityRepository(t *testing.T) {
	ctx := context.Background()
	r := NewIdentityRepository()
	r.Seed(model.IdentityRecord{Kind: model.KindEmployee, NaturalID: "E1", Email: "e@uni.edu"})

	_, err := r.Find(ctx, model.KindStudent, "E1")
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, r.UpdateJobTitle(ctx, "E1", "Dean"))
	rec, err := r.Find(ctx, model.KindEmployee, "E1")
	require.NoError(t, err)
	require.NotNil(t, rec.Attribute)
	assert.Equal(t, "Dean", *rec.Attribute)

	require.ErrorIs(t, r.UpdateJobTitle(ctx, "E2", "Dean"), model.ErrNotFound)
}

func TestVerificationRepository_Redeem(t *testing.T) {
	ctx := context.Background()
	r := NewVerificationRepository()
	now := time.Now()
	owner := int64(7)

	_, err := r.Create(ctx, model.VerificationCode{
		OwnerID: &owner, Code: "111111", NaturalID: "S1", Kind: model.KindStudent,
		Purpose: model.PurposeAddCredential, ExpiresAt: now.Add(time.Minute), CreatedAt: now,
	})
	require.NoError(t, err)

	params := model.RedeemParams{NaturalID: "S1", Kind: model.KindStudent, Purpose: model.PurposeAddCredential, Code: "111111"}

	wrongOwner := int64(8)
	withWrongOwner := params
	withWrongOwner.OwnerID = &wrongOwner
	_, err = r.Redeem(ctx, withWrongOwner, now)
	require.ErrorIs(t, err, model.ErrNotFound)

	wrongPurpose := params
	wrongPurpose.Purpose = model.PurposeRegistration
	_, err = r.Redeem(ctx, wrongPurpose, now)
	require.ErrorIs(t, err, model.ErrNotFound)

	_, err = r.Redeem(ctx, params, now.Add(2*time.Minute))
	require.ErrorIs(t, err, model.ErrNotFound)

	withOwner := params
	withOwner.OwnerID = &owner
	code, err := r.Redeem(ctx, withOwner, now)
	require.NoError(t, err)
	assert.True(t, code.Used)

	_, err = r.Redeem(ctx, params, now)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestVerificationRepository_RedeemPicksNewest(t *testing.T) {
	ctx := context.Background()
	r := NewVerificationRepository()
	now := time.Now()

	base := model.VerificationCode{Code: "222222", NaturalID: "S1", Kind: model.KindStudent, Purpose: model.PurposeRegistration, ExpiresAt: now.Add(time.Minute)}
	older := base
	older.CreatedAt = now.Add(-time.Second)
	older.Email = "old@uni.edu"
	newest := base
	newest.CreatedAt = now
	newest.Email = "new@uni.edu"

	_, err := r.Create(ctx, older)
	require.NoError(t, err)
	_, err = r.Create(ctx, newest)
	require.NoError(t, err)

	code, err := r.Redeem(ctx, model.RedeemParams{NaturalID: "S1", Kind: model.KindStudent, Purpose: model.PurposeRegistration, Code: "222222"}, now)
	require.NoError(t, err)
	assert.Equal(t, "new@uni.edu", code.Email)
}

func TestVerificationRepository_RedeemMatchesEmail(t *testing.T) {
	ctx := context.Background()
	r := NewVerificationRepository()
	now := time.Now()

	_, err := r.Create(ctx, model.VerificationCode{
		Code: "333333", Email: "ana@uni.edu", NaturalID: "S1", Kind: model.KindStudent,
		Purpose: model.PurposeRegistration, ExpiresAt: now.Add(time.Minute), CreatedAt: now,
	})
	require.NoError(t, err)

	params := model.RedeemParams{Email: "x@y.com", NaturalID: "S1", Kind: model.KindStudent, Purpose: model.PurposeRegistration, Code: "333333"}
	_, err = r.Redeem(ctx, params, now)
	require.ErrorIs(t, err, model.ErrNotFound)

	params.Email = " ANA@uni.edu"
	code, err := r.Redeem(ctx, params, now)
	require.NoError(t, err)
	assert.Equal(t, "ana@uni.edu", code.Email)
}

func TestVerificationRepository_ConcurrentRedeem(t *testing.T) {
	ctx := context.Background()
	r := NewVerificationRepository()
	now := time.Now()

	_, err := r.Create(ctx, model.VerificationCode{
		Code: "333333", NaturalID: "S1", Kind: model.KindStudent,
		Purpose: model.PurposeRegistration, ExpiresAt: now.Add(time.Minute), CreatedAt: now,
	})
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Redeem(ctx, model.RedeemParams{NaturalID: "S1", Kind: model.KindStudent, Purpose: model.PurposeRegistration, Code: "333333"}, now)
			if err == nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
}

func TestVerificationRepository_DeleteExpired(t *testing.T) {
	ctx := context.Background()
	r := NewVerificationRepository()
	now := time.Now()

	_, _ = r.Create(ctx, model.VerificationCode{Code: "1", ExpiresAt: now.Add(-time.Hour), CreatedAt: now.Add(-2 * time.Hour)})
	_, _ = r.Create(ctx, model.VerificationCode{Code: "2", ExpiresAt: now.Add(time.Hour), CreatedAt: now})

	deleted, err := r.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Len(t, r.codes, 1)
}

func TestCredentialRepository(t *testing.T) {
	ctx := context.Background()
	r := NewCredentialRepository()

	c := model.Credential{AccountID: 1, NaturalID: "S1", Kind: model.KindStudent, Number: "EST-S1"}
	saved, err := r.Create(ctx, c)
	require.NoError(t, err)

	_, err = r.Create(ctx, c)
	require.ErrorIs(t, err, model.ErrAlreadyExists)

	_, err = r.Create(ctx, model.Credential{AccountID: 2, NaturalID: "S1", Kind: model.KindStudent, Number: "EST-S1"})
	require.ErrorIs(t, err, model.ErrAlreadyExists)

	_, err = r.Create(ctx, model.Credential{AccountID: 1, NaturalID: "E1", Kind: model.KindEmployee, Number: "EMP-E1"})
	require.NoError(t, err)

	list, err := r.ListByAccount(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, saved.ID, list[0].ID)

	got, err := r.GetByNumber(ctx, "EST-S1")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)

	got, err = r.GetByAccountAndKind(ctx, 1, model.KindEmployee)
	require.NoError(t, err)
	assert.Equal(t, "EMP-E1", got.Number)

	updated, err := r.UpdatePhoto(ctx, saved.ID, "k")
	require.NoError(t, err)
	require.NotNil(t, updated.PhotoKey)

	require.NoError(t, r.Delete(ctx, saved.ID))
	_, err = r.GetByID(ctx, saved.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, saved.ID), model.ErrNotFound)
}
