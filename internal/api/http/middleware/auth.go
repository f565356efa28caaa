package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/feedline/feedline/internal/model"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityResolver validates bearer tokens and resolves the caller.
type IdentityResolver interface {
	Identify(ctx context.Context, token string) (model.Identity, error)
}

// Identity attaches the caller's resolved Identity to the request context.
// A missing Authorization header leaves the identity absent; a header that
// is present but invalid is rejected immediately. Handlers that mutate
// state must require a present identity themselves.
type Identity struct {
	resolver IdentityResolver
}

// NewIdentity creates the identity-attaching middleware.
func NewIdentity(resolver IdentityResolver) *Identity {
	return &Identity{resolver: resolver}
}

func (m *Identity) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		identity, err := m.resolver.Identify(r.Context(), tokenString)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"invalid or expired token"}`))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// WithIdentity returns a context carrying the caller identity.
func WithIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext retrieves the caller identity, if present.
func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(model.Identity)
	return identity, ok
}
