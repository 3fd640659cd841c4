package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/costtrack/internal/domain/activity"
)

// LocalActor is recorded as the actor when authentication is disabled.
const LocalActor = "local"

// KeyResolver resolves the label of an API key from its bearer token.
type KeyResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// authMiddleware implements bearer token authentication as MCP middleware.
// The resolved key label becomes the activity actor.
func authMiddleware(resolver KeyResolver) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			// Skip auth for protocol methods
			if method == "initialize" || method == "ping" || strings.HasPrefix(method, "notifications/") {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, fmt.Errorf("unauthorized: missing headers")
			}

			auth := extra.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				return nil, fmt.Errorf("unauthorized: missing bearer token")
			}

			label, err := resolver.Resolve(ctx, token)
			if err != nil {
				return nil, fmt.Errorf("unauthorized: %w", err)
			}
			if label == "" {
				return nil, fmt.Errorf("unauthorized: invalid bearer token")
			}

			return next(activity.WithActor(ctx, label), method, req)
		}
	}
}

// noAuthMiddleware injects a fixed actor when auth is disabled.
func noAuthMiddleware(actor string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			return next(activity.WithActor(ctx, actor), method, req)
		}
	}
}
