package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dtroode/idwallet-server/internal/model"
)

var _ model.CredentialStore = (*CredentialRepository)(nil)

type CredentialRepository struct {
	mu          sync.RWMutex
	nextID      int64
	credentials map[int64]model.Credential
}

func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{
		credentials: make(map[int64]model.Credential),
	}
}

func (r *CredentialRepository) Create(ctx context.Context, credential model.Credential) (model.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.credentials {
		if c.Number == credential.Number {
			return model.Credential{}, model.ErrAlreadyExists
		}
		if c.AccountID == credential.AccountID && c.Kind == credential.Kind {
			return model.Credential{}, model.ErrAlreadyExists
		}
	}

	r.nextID++
	now := time.Now()
	credential.ID = r.nextID
	credential.CreatedAt = now
	credential.UpdatedAt = now
	r.credentials[credential.ID] = credential

	return credential, nil
}

func (r *CredentialRepository) GetByID(ctx context.Context, id int64) (model.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.credentials[id]
	if !ok {
		return model.Credential{}, model.ErrNotFound
	}
	return c, nil
}

func (r *CredentialRepository) GetByAccountAndKind(ctx context.Context, accountID int64, kind model.IdentityKind) (model.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.credentials {
		if c.AccountID == accountID && c.Kind == kind {
			return c, nil
		}
	}
	return model.Credential{}, model.ErrNotFound
}

func (r *CredentialRepository) GetByNumber(ctx context.Context, number string) (model.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.credentials {
		if c.Number == number {
			return c, nil
		}
	}
	return model.Credential{}, model.ErrNotFound
}

func (r *CredentialRepository) ListByAccount(ctx context.Context, accountID int64) ([]model.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]model.Credential, 0)
	for _, c := range r.credentials {
		if c.AccountID == accountID {
			list = append(list, c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	return list, nil
}

func (r *CredentialRepository) UpdatePhoto(ctx context.Context, id int64, photoKey string) (model.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.credentials[id]
	if !ok {
		return model.Credential{}, model.ErrNotFound
	}
	c.PhotoKey = &photoKey
	c.UpdatedAt = time.Now()
	r.credentials[id] = c

	return c, nil
}

func (r *CredentialRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.credentials[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.credentials, id)

	return nil
}
