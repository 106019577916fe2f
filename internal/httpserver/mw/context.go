package mw

import (
	"context"

	"github.com/MrSnakeDoc/healthvibe/internal/identity"
)

type ctxKey int

const (
	clientIDKey ctxKey = iota
	userKey
	requestInfoKey
)

// requestInfo lets inner middlewares report identifiers back to Log.
type requestInfo struct {
	clientID string
	userID   string
}

func withRequestInfo(ctx context.Context, ri *requestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey, ri)
}

func requestInfoFrom(ctx context.Context) *requestInfo {
	ri, _ := ctx.Value(requestInfoKey).(*requestInfo)
	return ri
}

// ClientID returns the client scope set by ClientScope, or "".
func ClientID(ctx context.Context) string {
	id, _ := ctx.Value(clientIDKey).(string)
	return id
}

// WithClientID stores a client scope in ctx.
func WithClientID(ctx context.Context, id string) context.Context {
	if ri := requestInfoFrom(ctx); ri != nil {
		ri.clientID = id
	}
	return context.WithValue(ctx, clientIDKey, id)
}

// User returns the authenticated user set by Identity.
func User(ctx context.Context) (identity.User, bool) {
	u, ok := ctx.Value(userKey).(identity.User)
	return u, ok
}

// WithUser stores an authenticated user in ctx.
func WithUser(ctx context.Context, u identity.User) context.Context {
	if ri := requestInfoFrom(ctx); ri != nil {
		ri.userID = u.ID
	}
	return context.WithValue(ctx, userKey, u)
}
