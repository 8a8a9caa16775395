package ownership

import (
	"context"

	"github.com/google/uuid"

	"bootcamp-backend/internal/shared/apperror"
	"bootcamp-backend/internal/shared/auth"
)

// Action is a mutation checked by the guard
type Action string

const (
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionCreate Action = "create"
)

// Ownable is any record with an owning user
type Ownable interface {
	OwnerID() uuid.UUID
}

// Guard decides whether a principal may mutate a record
type Guard struct {
	elevated  map[auth.Role]struct{}
	perAction map[Action]map[auth.Role]struct{}
}

// NewGuard elevates the given roles for every action. With no roles, admin is elevated.
func NewGuard(elevated ...auth.Role) *Guard {
	if len(elevated) == 0 {
		elevated = []auth.Role{auth.RoleAdmin}
	}
	return &Guard{
		elevated:  roleSet(elevated),
		perAction: make(map[Action]map[auth.Role]struct{}),
	}
}

// WithAction returns a copy of g whose elevated set for action is replaced by roles
func (g *Guard) WithAction(action Action, roles ...auth.Role) *Guard {
	next := &Guard{
		elevated:  g.elevated,
		perAction: make(map[Action]map[auth.Role]struct{}, len(g.perAction)+1),
	}
	for a, set := range g.perAction {
		next.perAction[a] = set
	}
	next.perAction[action] = roleSet(roles)
	return next
}

// IsElevated reports whether p bypasses ownership for action
func (g *Guard) IsElevated(p *auth.Principal, action Action) bool {
	if p == nil {
		return false
	}
	set, ok := g.perAction[action]
	if !ok {
		set = g.elevated
	}
	_, elevated := set[p.Role]
	return elevated
}

// CanMutate is true when p owns rec or is elevated for action
func (g *Guard) CanMutate(p *auth.Principal, action Action, rec Ownable) bool {
	if p == nil || rec == nil {
		return false
	}
	return rec.OwnerID() == p.ID || g.IsElevated(p, action)
}

// Authorize returns a Forbidden error naming the denied principal and action
func (g *Guard) Authorize(p *auth.Principal, action Action, resource string, rec Ownable) error {
	if g.CanMutate(p, action, rec) {
		return nil
	}
	if p == nil {
		return apperror.Unauthorized("Not authorized to access this route")
	}
	return apperror.Forbidden("User %s is not authorized to %s this %s", p.ID, action, resource)
}

// ExistsFunc reports whether owner already has a record in the category
type ExistsFunc func(ctx context.Context, owner uuid.UUID) (bool, error)

// AuthorizeCreate enforces one record per owner unless p is elevated for create
func (g *Guard) AuthorizeCreate(ctx context.Context, p *auth.Principal, resource string, exists ExistsFunc) error {
	if p == nil {
		return apperror.Unauthorized("Not authorized to access this route")
	}
	if g.IsElevated(p, ActionCreate) {
		return nil
	}

	found, err := exists(ctx, p.ID)
	if err != nil {
		return err
	}
	if found {
		return apperror.Validation("The user with ID %s has already published a %s", p.ID, resource)
	}
	return nil
}

func roleSet(roles []auth.Role) map[auth.Role]struct{} {
	set := make(map[auth.Role]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}
