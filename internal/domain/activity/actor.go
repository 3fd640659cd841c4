package activity

import "context"

type actorKey struct{}

// WithActor attaches the acting principal to ctx.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the acting principal, or "" when unknown.
func ActorFromContext(ctx context.Context) string {
	v, _ := ctx.Value(actorKey{}).(string)
	return v
}
