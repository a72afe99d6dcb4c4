package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityFromContext(t *testing.T) {
	ctx := context.Background()

	// Пустой контекст - анонимный запрос
	ident, ok := IdentityFromContext(ctx)
	assert.False(t, ok)
	assert.Nil(t, ident)

	want := &Identity{ID: "user-123", Username: "ada", Email: "ada@example.com"}
	ctx = WithIdentity(ctx, want)

	ident, ok = IdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, want, ident)
}

func TestIdentityFromContext_NilIdentity(t *testing.T) {
	ctx := WithIdentity(context.Background(), nil)

	ident, ok := IdentityFromContext(ctx)
	assert.False(t, ok)
	assert.Nil(t, ident)
}
