package jwt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/portalguard/pkg/jwt"
)

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	t.Run("empty context", func(t *testing.T) {
		t.Parallel()
		_, ok := jwt.GetToken(context.Background())
		assert.False(t, ok)
		_, ok = jwt.GetClaims(context.Background())
		assert.False(t, ok)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		ctx := jwt.SetToken(context.Background(), "raw")
		ctx = jwt.SetClaims(ctx, jwt.Claims{Subject: "user-1"})

		token, ok := jwt.GetToken(ctx)
		assert.True(t, ok)
		assert.Equal(t, "raw", token)

		claims, ok := jwt.GetClaims(ctx)
		assert.True(t, ok)
		assert.Equal(t, "user-1", claims.Subject)
	})
}
