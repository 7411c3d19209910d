package domain

import "context"

// Principal is the authenticated caller resolved by the auth middleware.
// Authentication itself (token issuance, credential checks) is an external
// collaborator; the application only consumes the resolved identity.
type Principal struct {
	Username string
	Role     Role
}

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal returns a context carrying the authenticated principal.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext extracts the authenticated principal from the context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
