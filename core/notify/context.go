package notify

import "context"

type identityContextKey struct{}

// WithIdentity attaches the admitted identity to a connection-scoped context.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext returns the identity attached by WithIdentity.
func IdentityFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityContextKey{}).(string)
	return id, ok && id != ""
}
