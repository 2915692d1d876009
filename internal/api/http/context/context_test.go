package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/idwallet-server/internal/model"
)

func TestManager_ClaimsRoundTrip(t *testing.T) {
	m := NewManager()
	claims := model.Claims{AccountID: 42, Email: "a@b.com", Identifier: "S001", Role: model.RoleStudent}

	ctx := m.SetClaimsToContext(context.Background(), claims)

	got, ok := m.GetClaimsFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, claims, got)
}

func TestManager_GetClaimsFromContext_Missing(t *testing.T) {
	m := NewManager()

	_, ok := m.GetClaimsFromContext(context.Background())
	assert.False(t, ok)

	_, ok = m.GetClaimsFromContext(m.SetClaimsToContext(context.Background(), model.Claims{}))
	assert.False(t, ok)
}
