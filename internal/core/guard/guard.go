// Package guard holds every authorization rule of the panel in one place.
//
// Authorize is a pure function: it looks only at the principal and the
// action, never at storage. Services load whatever target the action needs,
// call Authorize, and touch storage only when it returns nil.
package guard

import (
	"github.com/cadmin/cadmin-api/internal/core/domain"
)

// Action is a closed set of operations the guard knows how to decide.
type Action interface {
	name() string
}

// ListUsers covers listing and searching user accounts.
type ListUsers struct{}

// ViewStats covers the dashboard aggregates.
type ViewStats struct{}

// CreateUser covers account creation with the requested role.
type CreateUser struct {
	Role domain.Role
}

// UpdateUser covers name, role and active changes on Target.
// NewRole is nil when the role is not being changed.
type UpdateUser struct {
	Target  *domain.User
	NewRole *domain.Role
}

// DeleteUser covers removing Target.
type DeleteUser struct {
	Target *domain.User
}

// ReadResource covers fetching a single resource.
type ReadResource struct {
	Resource *domain.Resource
}

// UpdateResource covers a partial update of a resource.
type UpdateResource struct {
	Resource *domain.Resource
}

// DeleteResource covers removing a resource.
type DeleteResource struct {
	Resource *domain.Resource
}

func (ListUsers) name() string      { return "list_users" }
func (ViewStats) name() string      { return "view_stats" }
func (CreateUser) name() string     { return "create_user" }
func (UpdateUser) name() string     { return "update_user" }
func (DeleteUser) name() string     { return "delete_user" }
func (ReadResource) name() string   { return "read_resource" }
func (UpdateResource) name() string { return "update_resource" }
func (DeleteResource) name() string { return "delete_resource" }

// Name returns a stable label for a, used in logs and metrics.
func Name(a Action) string {
	if a == nil {
		return "unknown"
	}
	return a.name()
}

// Authorize returns nil when p may perform a, or an error wrapping
// domain.ErrForbidden otherwise.
func Authorize(p domain.Principal, a Action) error {
	switch act := a.(type) {
	case ListUsers:
		return requireAdmin(p)

	case ViewStats:
		return requireAdmin(p)

	case CreateUser:
		if err := requireAdmin(p); err != nil {
			return err
		}
		return checkEscalation(p, act.Role)

	case UpdateUser:
		if err := requireAdmin(p); err != nil {
			return err
		}
		if err := checkProtected(act.Target); err != nil {
			return err
		}
		if act.NewRole != nil {
			return checkEscalation(p, *act.NewRole)
		}
		return nil

	case DeleteUser:
		if err := checkProtected(act.Target); err != nil {
			return err
		}
		if p.Role != domain.RoleSuperAdmin {
			return domain.Denied("only super admins can delete users")
		}
		return nil

	case ReadResource:
		return checkOwnership(p, act.Resource)
	case UpdateResource:
		return checkOwnership(p, act.Resource)
	case DeleteResource:
		return checkOwnership(p, act.Resource)
	}

	return domain.Denied("unknown action")
}

// ResourceScope returns the owner id that resource queries must be limited
// to for p, or "" when p may see every resource.
func ResourceScope(p domain.Principal) string {
	if p.Role.AtLeast(domain.RoleAdmin) {
		return ""
	}
	return p.ID
}

func requireAdmin(p domain.Principal) error {
	if !p.Role.AtLeast(domain.RoleAdmin) {
		return domain.Denied("insufficient permissions")
	}
	return nil
}

// checkEscalation: granting ADMIN or above needs a super admin.
func checkEscalation(p domain.Principal, role domain.Role) error {
	if role.AtLeast(domain.RoleAdmin) && p.Role != domain.RoleSuperAdmin {
		return domain.Denied("only super admins can grant the admin role")
	}
	return nil
}

func checkProtected(target *domain.User) error {
	if target == nil {
		return domain.Denied("missing target user")
	}
	if target.Role == domain.RoleSuperAdmin {
		return domain.Denied("super admin accounts cannot be modified")
	}
	return nil
}

func checkOwnership(p domain.Principal, r *domain.Resource) error {
	if r == nil {
		return domain.Denied("missing target resource")
	}
	if p.Role.AtLeast(domain.RoleAdmin) {
		return nil
	}
	if p.ID == "" || r.OwnerID != p.ID {
		return domain.Denied("access denied")
	}
	return nil
}
