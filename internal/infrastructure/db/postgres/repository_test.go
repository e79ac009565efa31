package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadmin/cadmin-api/internal/core/domain"
)

func TestValidID(t *testing.T) {
	assert.True(t, validID(uuid.NewString()))
	assert.False(t, validID(""))
	assert.False(t, validID("abc"))
	assert.False(t, validID("1; DROP TABLE users"))
}

// Malformed ids never reach the database, so a repository without a
// connection is enough here.
func TestUserRepository_MalformedIDIsNotFound(t *testing.T) {
	repo := NewUserRepository(nil)
	ctx := context.Background()
	name := "x"

	_, err := repo.FindByID(ctx, "abc")
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.Update(ctx, "abc", domain.UserChanges{Name: &name})
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	require.ErrorIs(t, repo.Delete(ctx, "abc"), domain.ErrUserNotFound)
}

func TestResourceRepository_MalformedIDIsNotFound(t *testing.T) {
	repo := NewResourceRepository(nil)
	ctx := context.Background()
	status := domain.StatusArchived

	_, err := repo.FindByID(ctx, "abc")
	require.ErrorIs(t, err, domain.ErrResourceNotFound)

	_, err = repo.Update(ctx, "abc", domain.ResourceChanges{Status: &status})
	require.ErrorIs(t, err, domain.ErrResourceNotFound)

	require.ErrorIs(t, repo.Delete(ctx, "abc"), domain.ErrResourceNotFound)
}
