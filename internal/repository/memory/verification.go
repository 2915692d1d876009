package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/idwallet-server/internal/model"
)

var _ model.VerificationCodeStore = (*VerificationRepository)(nil)

type VerificationRepository struct {
	mu     sync.Mutex
	nextID int64
	codes  []model.VerificationCode
}

func NewVerificationRepository() *VerificationRepository {
	return &VerificationRepository{}
}

func (r *VerificationRepository) Create(ctx context.Context, code model.VerificationCode) (model.VerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	code.ID = r.nextID
	code.Used = false
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now()
	}
	r.codes = append(r.codes, code)

	return code, nil
}

// Redeem holds the lock across lookup and update, so a code is redeemed at most once.
func (r *VerificationRepository) Redeem(ctx context.Context, params model.RedeemParams, now time.Time) (model.VerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, c := range r.codes {
		if !matches(c, params) || !c.Redeemable(now) {
			continue
		}
		if idx == -1 || newer(c, r.codes[idx]) {
			idx = i
		}
	}
	if idx == -1 {
		return model.VerificationCode{}, model.ErrNotFound
	}

	r.codes[idx].Used = true
	return r.codes[idx], nil
}

func (r *VerificationRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.codes[:0]
	var deleted int64
	for _, c := range r.codes {
		if c.ExpiresAt.Before(before) || (c.Used && c.CreatedAt.Before(before)) {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	r.codes = kept

	return deleted, nil
}

func matches(c model.VerificationCode, p model.RedeemParams) bool {
	if c.NaturalID != p.NaturalID || c.Kind != p.Kind || c.Purpose != p.Purpose || c.Code != p.Code {
		return false
	}
	if p.Email != "" && normalizeEmail(c.Email) != normalizeEmail(p.Email) {
		return false
	}
	if p.OwnerID == nil {
		return true
	}
	return c.OwnerID != nil && *c.OwnerID == *p.OwnerID
}

func newer(a, b model.VerificationCode) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID > b.ID
	}
	return a.CreatedAt.After(b.CreatedAt)
}
