package domain

import (
	"context"
	"time"
)

// Principal is the session projection of an authenticated user.
type Principal struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	RoleID   int    `json:"roleId"`
}

// NewPrincipal projects u onto a Principal.
func NewPrincipal(u *User) Principal {
	return Principal{ID: u.ID, Username: u.Username, RoleID: u.RoleID}
}

// HasRole reports whether the principal holds one of roles.
func (p Principal) HasRole(roles ...int) bool {
	for _, r := range roles {
		if p.RoleID == r {
			return true
		}
	}
	return false
}

// Session is a live login backed by the session store.
type Session struct {
	ID        string
	Principal Principal
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type principalKey struct{}

// ContextWithPrincipal returns a copy of ctx carrying p.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by ContextWithPrincipal.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
