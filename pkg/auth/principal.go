// Package auth carries the authenticated caller through a request and
// issues the signed tokens that identify it.
package auth

import (
	"context"

	apperrors "fullmoon/pkg/errors"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

// Principal is the authenticated caller of an operation. Services receive
// it as an explicit argument; nil means anonymous.
type Principal struct {
	Subject string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// RequireAdmin returns Unauthorized for anonymous callers and Forbidden for
// authenticated non-admins.
func RequireAdmin(p *Principal) error {
	if p == nil {
		return apperrors.Unauthorized("authentication required")
	}
	if p.Role != RoleAdmin {
		return apperrors.Forbidden("administrator access required")
	}
	return nil
}

func RequireAuthenticated(p *Principal) error {
	if p == nil || p.Subject == "" {
		return apperrors.Unauthorized("authentication required")
	}
	return nil
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}
