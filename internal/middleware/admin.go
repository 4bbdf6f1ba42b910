package middleware

import (
	"crypto/subtle"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const adminKeyHeader = "X-Admin-Key"

// AdminKey guards admin routes with a shared secret header. The comparison
// is constant-time and the expected value never appears in a response.
func AdminKey(key string, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			supplied := ctx.Request.Header.Peek(adminKeyHeader)
			if key == "" || subtle.ConstantTimeCompare(supplied, []byte(key)) != 1 {
				logger.Warn("admin key rejected", zap.String("path", string(ctx.Path())))
				ctx.SetStatusCode(fasthttp.StatusForbidden)
				return
			}
			next(ctx)
		}
	}
}
