package auth

import "context"

// Identity represents the verified caller of a request, decoded from an
// access token. It lives only for the duration of one request; a nil
// identity means the request is anonymous.
type Identity struct {
	ID       string
	Username string
	Email    string
}

type identityKey struct{}

// WithIdentity stores the identity in the request context
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

// IdentityFromContext retrieves the identity from the context (if any)
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(*Identity)
	return ident, ok && ident != nil
}
