package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrPrincipalNotFound is returned by loaders when the token subject no longer exists
var ErrPrincipalNotFound = errors.New("principal not found")

// Role enum
type Role string

const (
	RoleUser      Role = "user"      // Writes reviews
	RolePublisher Role = "publisher" // Publishes bootcamps and courses
	RoleAdmin     Role = "admin"     // Full access
)

// IsValid kiểm tra role hợp lệ
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RolePublisher, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRoles converts a list of raw names, skipping unknown ones
func ParseRoles(names []string) []Role {
	roles := make([]Role, 0, len(names))
	for _, n := range names {
		if r := Role(n); r.IsValid() {
			roles = append(roles, r)
		}
	}
	return roles
}

// Principal is the authenticated identity attached to a request
type Principal struct {
	ID   uuid.UUID
	Role Role
}

// HasRole reports whether the principal's role is one of roles
func (p *Principal) HasRole(roles ...Role) bool {
	if p == nil {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal attached by the auth middleware.
// Public routes never attach one.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
