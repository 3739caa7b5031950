package middleware

import (
	"context"

	"github.com/districthealth/medavail-backend/internal/authz"
)

type contextKey string

const ctxPrincipal contextKey = "principal"

// PrincipalFromContext returns the authenticated actor, or nil when the
// request carried no valid session.
func PrincipalFromContext(ctx context.Context) *authz.Principal {
	if ctx == nil {
		return nil
	}
	if p, ok := ctx.Value(ctxPrincipal).(*authz.Principal); ok {
		return p
	}
	return nil
}

// WithPrincipal injects the actor into the context for downstream handlers.
func WithPrincipal(ctx context.Context, p *authz.Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxPrincipal, p)
}
