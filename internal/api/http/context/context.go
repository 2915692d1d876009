package context

import (
	"context"

	"github.com/dtroode/idwallet-server/internal/model"
)

type claimsKey struct{}

// Manager stores the authenticated claims in the request context.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) SetClaimsToContext(ctx context.Context, claims model.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaimsFromContext reports false when no account was authenticated.
func (m *Manager) GetClaimsFromContext(ctx context.Context) (model.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(model.Claims)
	if !ok || claims.AccountID == 0 {
		return model.Claims{}, false
	}
	return claims, true
}
