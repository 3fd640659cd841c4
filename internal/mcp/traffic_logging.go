package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/costtrack/internal/domain/activity"
)

// trafficLoggingMiddleware logs each request and its response at DEBUG.
// Tool failures that come back as error results are logged at WARN
// regardless of level.
func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil {
				return next(ctx, method, req)
			}
			debug := logger.Enabled(ctx, slog.LevelDebug)

			attrs := []any{
				"direction", direction,
				"method", method,
				"session_id", safeSessionID(req),
				"actor", activity.ActorFromContext(ctx),
			}
			if debug {
				logger.Debug("mcp traffic", append(attrs, "stage", "request", "params", formatPayload(safeParams(req)))...)
			}

			start := time.Now()
			result, err := next(ctx, method, req)
			attrs = append(attrs, "duration", time.Since(start))

			if res, ok := result.(*sdkmcp.CallToolResult); ok && res != nil && res.IsError {
				logger.Warn("mcp tool error", append(attrs, "result", formatPayload(res.Content))...)
			}
			if !debug || strings.HasPrefix(method, "notifications/") {
				return result, err
			}
			attrs = append(attrs, "stage", "response", "result", formatPayload(result))
			if err != nil {
				attrs = append(attrs, "error", err)
			}
			logger.Debug("mcp traffic", attrs...)
			return result, err
		}
	}
}

func safeSessionID(req sdkmcp.Request) (id string) {
	if req == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			id = ""
		}
	}()
	if session := req.GetSession(); session != nil {
		return session.ID()
	}
	return ""
}

func safeParams(req sdkmcp.Request) (params any) {
	if req == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			params = nil
		}
	}()
	return req.GetParams()
}

func formatPayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	return string(data)
}
