package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

func callAdmin(t *testing.T, key, supplied string) (*fasthttp.RequestCtx, bool) {
	t.Helper()

	called := false
	next := func(ctx *fasthttp.RequestCtx) {
		called = true
		ctx.SetStatusCode(fasthttp.StatusOK)
	}

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI("/api/v1/admin/payments")
	if supplied != "" {
		ctx.Request.Header.Set("X-Admin-Key", supplied)
	}

	AdminKey(key, zap.NewNop())(next)(ctx)
	return ctx, called
}

func TestAdminKeyAccepts(t *testing.T) {
	ctx, called := callAdmin(t, "s3cret", "s3cret")
	assert.True(t, called)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
}

func TestAdminKeyRejects(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		supplied string
	}{
		{"wrong key", "s3cret", "guess"},
		{"missing header", "s3cret", ""},
		{"empty configured key", "", "anything"},
		{"both empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, called := callAdmin(t, tt.key, tt.supplied)
			assert.False(t, called)
			assert.Equal(t, fasthttp.StatusForbidden, ctx.Response.StatusCode())
		})
	}
}
