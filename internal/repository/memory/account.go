package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dtroode/idwallet-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

type AccountRepository struct {
	mu       sync.RWMutex
	nextID   int64
	accounts map[int64]model.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[int64]model.Account),
	}
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := normalizeEmail(email)
	for _, a := range r.accounts {
		if normalizeEmail(a.Email) == want {
			return a, nil
		}
	}
	return model.Account{}, model.ErrNotFound
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return a, nil
}

func (r *AccountRepository) GetByIdentifier(ctx context.Context, kind model.IdentityKind, naturalID string) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if bound, ok := a.BoundIdentifier(kind); ok && bound == naturalID {
			return a, nil
		}
	}
	return model.Account{}, model.ErrNotFound
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := normalizeEmail(account.Email)
	for _, a := range r.accounts {
		if normalizeEmail(a.Email) == want {
			return model.Account{}, model.ErrAlreadyExists
		}
	}

	r.nextID++
	now := time.Now()
	account.ID = r.nextID
	account.CreatedAt = now
	account.UpdatedAt = now
	r.accounts[account.ID] = account

	return account, nil
}

func (r *AccountRepository) MarkVerified(ctx context.Context, id int64, passwordHash string) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	a.EmailVerified = true
	a.Active = true
	a.PasswordHash = passwordHash
	a.UpdatedAt = time.Now()
	r.accounts[id] = a

	return a, nil
}

func (r *AccountRepository) BindIdentifier(ctx context.Context, id int64, kind model.IdentityKind, naturalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return model.ErrNotFound
	}
	for otherID, other := range r.accounts {
		if bound, ok := other.BoundIdentifier(kind); ok && bound == naturalID && otherID != id {
			return model.ErrAlreadyExists
		}
	}

	value := naturalID
	switch kind {
	case model.KindStudent:
		a.StudentCode = &value
	case model.KindEmployee:
		a.NationalID = &value
	default:
		return fmt.Errorf("unsupported identity kind %q", kind)
	}
	a.UpdatedAt = time.Now()
	r.accounts[id] = a

	return nil
}
