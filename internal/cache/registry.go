package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/idwallet-server/internal/logger"
	"github.com/dtroode/idwallet-server/internal/model"
)

var _ model.IdentityRegistry = (*Registry)(nil)

const registryKeyPrefix = "registry:"

type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Registry is a read-through cache over an IdentityRegistry. Cache failures
// are logged and the call falls through to the wrapped registry.
type Registry struct {
	next   model.IdentityRegistry
	client kv
	ttl    time.Duration
	logger *logger.Logger
}

func NewRegistry(next model.IdentityRegistry, client kv, ttl time.Duration, logger *logger.Logger) *Registry {
	return &Registry{next: next, client: client, ttl: ttl, logger: logger}
}

type cachedRecord struct {
	Kind      model.IdentityKind `json:"kind"`
	NaturalID string             `json:"natural_id"`
	Email     string             `json:"email"`
	Attribute *string            `json:"attribute,omitempty"`
}

func registryKey(kind model.IdentityKind, naturalID string) string {
	return registryKeyPrefix + string(kind) + ":" + naturalID
}

func (r *Registry) Find(ctx context.Context, kind model.IdentityKind, naturalID string) (model.IdentityRecord, error) {
	key := registryKey(kind, naturalID)

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var c cachedRecord
		if err := json.Unmarshal(raw, &c); err == nil {
			return model.IdentityRecord{Kind: c.Kind, NaturalID: c.NaturalID, Email: c.Email, Attribute: c.Attribute}, nil
		}
		r.logger.Warn("Registry cache: dropping undecodable entry", "key", key)
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("Registry cache: get failed", "key", key, "error", err)
	}

	record, err := r.next.Find(ctx, kind, naturalID)
	if err != nil {
		return model.IdentityRecord{}, err
	}

	payload, err := json.Marshal(cachedRecord{
		Kind:      record.Kind,
		NaturalID: record.NaturalID,
		Email:     record.Email,
		Attribute: record.Attribute,
	})
	if err == nil {
		if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
			r.logger.Warn("Registry cache: set failed", "key", key, "error", err)
		}
	}

	return record, nil
}

func (r *Registry) UpdateJobTitle(ctx context.Context, nationalID string, jobTitle string) error {
	if err := r.next.UpdateJobTitle(ctx, nationalID, jobTitle); err != nil {
		return err
	}

	key := registryKey(model.KindEmployee, nationalID)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Warn("Registry cache: invalidate failed", "key", key, "error", err)
	}

	return nil
}
