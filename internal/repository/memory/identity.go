package memory

import (
	"context"
	"sync"

	"github.com/dtroode/idwallet-server/internal/model"
)

var _ model.IdentityRegistry = (*IdentityRepository)(nil)

type identityKey struct {
	kind      model.IdentityKind
	naturalID string
}

type IdentityRepository struct {
	mu      sync.RWMutex
	records map[identityKey]model.IdentityRecord
}

func NewIdentityRepository() *IdentityRepository {
	return &IdentityRepository{
		records: make(map[identityKey]model.IdentityRecord),
	}
}

// Seed inserts or replaces registry records.
func (r *IdentityRepository) Seed(records ...model.IdentityRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range records {
		r.records[identityKey{kind: rec.Kind, naturalID: rec.NaturalID}] = rec
	}
}

func (r *IdentityRepository) Find(ctx context.Context, kind model.IdentityKind, naturalID string) (model.IdentityRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[identityKey{kind: kind, naturalID: naturalID}]
	if !ok {
		return model.IdentityRecord{}, model.ErrNotFound
	}
	return rec, nil
}

func (r *IdentityRepository) UpdateJobTitle(ctx context.Context, nationalID string, jobTitle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := identityKey{kind: model.KindEmployee, naturalID: nationalID}
	rec, ok := r.records[key]
	if !ok {
		return model.ErrNotFound
	}
	rec.Attribute = &jobTitle
	r.records[key] = rec

	return nil
}
