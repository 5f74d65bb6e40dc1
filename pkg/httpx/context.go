package httpx

import (
	"context"
	"time"
)

type ctxKey string

const ctxKeyPrincipal ctxKey = "principal"

// Principal is the authenticated caller attached to a request.
type Principal struct {
	SessionID string
	Identity  string
	Admin     bool
	ExpiresAt time.Time
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKeyPrincipal).(Principal)
	return p, ok
}
