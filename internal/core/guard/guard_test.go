package guard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadmin/cadmin-api/internal/core/domain"
)

var (
	superAdmin = domain.Principal{ID: "u-super", Email: "admin@cadmin.io", Role: domain.RoleSuperAdmin}
	admin      = domain.Principal{ID: "u-admin", Email: "ops@cadmin.io", Role: domain.RoleAdmin}
	alice      = domain.Principal{ID: "u-alice", Email: "alice@cadmin.io", Role: domain.RoleUser}
	bob        = domain.Principal{ID: "u-bob", Email: "bob@cadmin.io", Role: domain.RoleUser}
)

func rolePtr(r domain.Role) *domain.Role { return &r }

func TestAuthorize(t *testing.T) {
	superTarget := &domain.User{ID: "u-super-2", Role: domain.RoleSuperAdmin}
	adminTarget := &domain.User{ID: "u-admin-2", Role: domain.RoleAdmin}
	userTarget := &domain.User{ID: "u-carol", Role: domain.RoleUser}
	alicesDoc := &domain.Resource{ID: "r-1", OwnerID: alice.ID}

	cases := []struct {
		name    string
		p       domain.Principal
		action  Action
		allowed bool
	}{
		{"super admin lists users", superAdmin, ListUsers{}, true},
		{"admin lists users", admin, ListUsers{}, true},
		{"user cannot list users", alice, ListUsers{}, false},

		{"admin views stats", admin, ViewStats{}, true},
		{"user cannot view stats", alice, ViewStats{}, false},

		{"admin creates user", admin, CreateUser{Role: domain.RoleUser}, true},
		{"admin cannot create admin", admin, CreateUser{Role: domain.RoleAdmin}, false},
		{"super admin creates admin", superAdmin, CreateUser{Role: domain.RoleAdmin}, true},
		{"user cannot create users", alice, CreateUser{Role: domain.RoleUser}, false},

		{"admin renames user", admin, UpdateUser{Target: userTarget}, true},
		{"admin cannot promote to admin", admin, UpdateUser{Target: userTarget, NewRole: rolePtr(domain.RoleAdmin)}, false},
		{"admin demotes admin", admin, UpdateUser{Target: adminTarget, NewRole: rolePtr(domain.RoleUser)}, true},
		{"super admin promotes to admin", superAdmin, UpdateUser{Target: userTarget, NewRole: rolePtr(domain.RoleAdmin)}, true},
		{"super admin cannot modify super admin", superAdmin, UpdateUser{Target: superTarget}, false},
		{"admin cannot modify super admin", admin, UpdateUser{Target: superTarget}, false},
		{"user cannot update users", alice, UpdateUser{Target: userTarget}, false},

		{"super admin deletes user", superAdmin, DeleteUser{Target: userTarget}, true},
		{"super admin deletes admin", superAdmin, DeleteUser{Target: adminTarget}, true},
		{"super admin cannot delete super admin", superAdmin, DeleteUser{Target: superTarget}, false},
		{"admin cannot delete users", admin, DeleteUser{Target: userTarget}, false},
		{"user cannot delete users", alice, DeleteUser{Target: userTarget}, false},

		{"owner reads own resource", alice, ReadResource{Resource: alicesDoc}, true},
		{"other user cannot read", bob, ReadResource{Resource: alicesDoc}, false},
		{"admin reads any resource", admin, ReadResource{Resource: alicesDoc}, true},
		{"owner updates own resource", alice, UpdateResource{Resource: alicesDoc}, true},
		{"other user cannot update", bob, UpdateResource{Resource: alicesDoc}, false},
		{"super admin updates any resource", superAdmin, UpdateResource{Resource: alicesDoc}, true},
		{"owner deletes own resource", alice, DeleteResource{Resource: alicesDoc}, true},
		{"other user cannot delete", bob, DeleteResource{Resource: alicesDoc}, false},

		{"nil resource is denied", admin, ReadResource{}, false},
		{"nil target is denied", superAdmin, DeleteUser{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.p, tc.action)
			if tc.allowed {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrForbidden), "expected ErrForbidden, got %v", err)
		})
	}
}

func TestAuthorize_UnknownRoleHasNoPrivileges(t *testing.T) {
	ghost := domain.Principal{ID: "u-ghost", Role: domain.Role("GUEST")}
	assert.ErrorIs(t, Authorize(ghost, ListUsers{}), domain.ErrForbidden)
	assert.ErrorIs(t, Authorize(ghost, ReadResource{Resource: &domain.Resource{OwnerID: "someone"}}), domain.ErrForbidden)
	assert.Equal(t, ghost.ID, ResourceScope(ghost))
}

func TestAuthorize_EmptyPrincipalCannotMatchUnownedResource(t *testing.T) {
	anon := domain.Principal{Role: domain.RoleUser}
	err := Authorize(anon, ReadResource{Resource: &domain.Resource{OwnerID: ""}})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestResourceScope(t *testing.T) {
	assert.Equal(t, "", ResourceScope(superAdmin))
	assert.Equal(t, "", ResourceScope(admin))
	assert.Equal(t, alice.ID, ResourceScope(alice))
}

func TestName(t *testing.T) {
	assert.Equal(t, "delete_user", Name(DeleteUser{}))
	assert.Equal(t, "read_resource", Name(ReadResource{}))
	assert.Equal(t, "unknown", Name(nil))
}
