package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cadmin/cadmin-api/internal/core/domain"
	"github.com/cadmin/cadmin-api/internal/core/ports"
	"github.com/cadmin/cadmin-api/internal/testkit/memstore"
)

func TestRun_Idempotent(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()

	first, err := Run(ctx, store.Users(), store.Resources(), bcrypt.MinCost, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, first.UsersCreated)
	assert.Equal(t, 8, first.ResourcesCreated)

	second, err := Run(ctx, store.Users(), store.Resources(), bcrypt.MinCost, zerolog.Nop())
	require.NoError(t, err)
	assert.Zero(t, second.UsersCreated)
	assert.Zero(t, second.ResourcesCreated)

	n, err := store.Users().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestRun_Accounts(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()

	_, err := Run(ctx, store.Users(), store.Resources(), bcrypt.MinCost, zerolog.Nop())
	require.NoError(t, err)

	admin, err := store.Users().FindByEmail(ctx, AdminEmail)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSuperAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(AdminPassword)))

	user, err := store.Users().FindByEmail(ctx, UserEmail)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.Active)

	owned, _, err := store.Resources().List(ctx, ports.ListResourcesFilter{OwnerID: user.ID})
	require.NoError(t, err)
	assert.Len(t, owned, 4)
}
