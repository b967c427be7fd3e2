// Package auth issues and verifies bearer tokens and checks passwords.
//
// Tokens are HS256 JWTs carrying the user's identity. There is no built-in
// signing secret: callers must supply one from configuration.
package auth

import (
	"context"
)

// Identity is the authenticated user attached to a request.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
