package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrymomot/mailpush/core/response"
)

type identityContextKey struct{}

// TokenVerifier resolves a bearer credential to an identity. Implementations
// strip an optional "Bearer " prefix once.
type TokenVerifier interface {
	Verify(raw string) (identity string, ok bool)
}

// Auth requires a valid bearer credential in the Authorization header and
// stores the verified identity in the request context. Requests without one
// get a 401 JSON error.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromAuthHeader(r)
			if token == "" {
				response.JSONErrorHandler(w, r, response.ErrUnauthorized.WithMessage("missing bearer token"))
				return
			}

			identity, ok := verifier.Verify(token)
			if !ok {
				response.JSONErrorHandler(w, r, response.ErrUnauthorized.WithMessage("invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// TokenFromAuthHeader returns the Authorization value when it uses the Bearer
// scheme with a non-blank credential. The scheme is kept for the verifier.
func TokenFromAuthHeader(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return ""
	}
	return header
}

// WithIdentity stores an authenticated identity in ctx.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext returns the identity stored by Auth.
func IdentityFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityContextKey{}).(string)
	return id, ok && id != ""
}
