package activity

import "context"

// SystemActor is recorded when no user is attached to the context.
const SystemActor = "system"

// ActorHeader carries the acting user over HTTP.
const ActorHeader = "X-Actor-Id"

type actorKey struct{}

// WithActor returns a context carrying the acting user ID.
func WithActor(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFromContext returns the acting user ID, or SystemActor.
func ActorFromContext(ctx context.Context) string {
	if ctx == nil {
		return SystemActor
	}
	if v, ok := ctx.Value(actorKey{}).(string); ok && v != "" {
		return v
	}
	return SystemActor
}
