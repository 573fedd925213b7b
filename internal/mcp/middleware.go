package mcp

import (
	"context"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/activity"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// actorMiddleware attaches the acting user from the X-Actor-Id header (HTTP) or
// _meta.actor_id (stdio), falling back to defaultActor.
func actorMiddleware(defaultActor string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			actor := requestActor(req)
			if actor == "" {
				actor = defaultActor
			}
			return next(activity.WithActor(ctx, actor), method, req)
		}
	}
}

func requestActor(req sdkmcp.Request) (actor string) {
	if req == nil {
		return ""
	}
	if extra := req.GetExtra(); extra != nil && extra.Header != nil {
		if v := extra.Header.Get(activity.ActorHeader); v != "" {
			return v
		}
	}

	// Some notifications carry a typed nil params value; GetMeta panics on those.
	defer func() {
		if recover() != nil {
			actor = ""
		}
	}()
	if params := req.GetParams(); params != nil {
		if meta := params.GetMeta(); meta != nil {
			if v, ok := meta["actor_id"].(string); ok {
				return v
			}
		}
	}
	return ""
}
