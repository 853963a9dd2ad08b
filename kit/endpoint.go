// CLAUDE:SUMMARY Endpoint abstraction — transport-agnostic handlers with composable middleware.
// Package kit provides the endpoint plumbing shared by HTTP and MCP transports.
package kit

import (
	"context"
	"log/slog"
	"time"
)

// Endpoint is a transport-agnostic request handler. HTTP handlers and MCP
// tools both decode into a typed request and delegate to an Endpoint.
type Endpoint func(ctx context.Context, req any) (any, error)

// Middleware wraps an Endpoint with cross-cutting behaviour.
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares; the first wraps outermost.
func Chain(mws ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}

// Logging returns a Middleware that logs each call's duration and outcome.
func Logging(logger *slog.Logger, name string) Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, req any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			if err != nil {
				logger.Warn("endpoint failed",
					"endpoint", name,
					"transport", GetTransport(ctx),
					"duration_ms", time.Since(start).Milliseconds(),
					"error", err)
				return resp, err
			}
			logger.Debug("endpoint done",
				"endpoint", name,
				"transport", GetTransport(ctx),
				"duration_ms", time.Since(start).Milliseconds())
			return resp, nil
		}
	}
}
