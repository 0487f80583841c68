package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/easybill/internal/core"
	"github.com/go-chi/chi/v5/middleware"
)

// WithRequestMetadata adds IP, User-Agent and request id to the context for
// audit logging.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ip := r.RemoteAddr // Already processed by TrustedRealIP
	ctx = core.ContextWithIPAddress(ctx, ip)
	ctx = core.ContextWithUserAgent(ctx, r.Header.Get("User-Agent"))
	ctx = core.ContextWithRequestID(ctx, middleware.GetReqID(r.Context()))
	return ctx
}
