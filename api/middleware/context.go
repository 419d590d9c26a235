package middleware

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lumenarts/gallery-api/pkg/enums"
)

type contextKey string

const (
	ctxAdminID   contextKey = "admin_id"
	ctxRole      contextKey = "actor_role"
	ctxTokenID   contextKey = "token_id"
	ctxExpiresAt contextKey = "token_expires_at"
)

// Session is the authenticated identity attached by Auth.
type Session struct {
	AdminID   uuid.UUID
	Role      enums.Role
	TokenID   string
	ExpiresAt time.Time
}

func AdminIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxAdminID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

func RoleFromContext(ctx context.Context) enums.Role {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(enums.Role); ok {
		return v
	}
	return ""
}

// SessionFromContext returns the token identity, if the request carried one.
func SessionFromContext(ctx context.Context) (Session, bool) {
	id := AdminIDFromContext(ctx)
	if id == uuid.Nil {
		return Session{}, false
	}
	jti, _ := ctx.Value(ctxTokenID).(string)
	exp, _ := ctx.Value(ctxExpiresAt).(time.Time)
	return Session{AdminID: id, Role: RoleFromContext(ctx), TokenID: jti, ExpiresAt: exp}, true
}

// WithSession injects an authenticated identity into the context.
func WithSession(ctx context.Context, s Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxAdminID, s.AdminID)
	ctx = context.WithValue(ctx, ctxRole, s.Role)
	ctx = context.WithValue(ctx, ctxTokenID, s.TokenID)
	return context.WithValue(ctx, ctxExpiresAt, s.ExpiresAt)
}
