package ports

import (
	"context"

	"github.com/cadmin/cadmin-api/internal/core/domain"
)

// ListUsersFilter carries the query parameters for listing users.
type ListUsersFilter struct {
	Search string      // optional: case-insensitive match on name or email
	Role   domain.Role // optional
	Page   int         // 1-based
	Limit  int
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create fails with domain.ErrEmailTaken when the email already exists.
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail matches the email exactly (case-sensitive).
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns a page of users, newest first, with ResourceCount set,
	// and the total number of matching users.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	// Update writes the given changes and returns the stored record.
	Update(ctx context.Context, id string, changes domain.UserChanges) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, n int) ([]*domain.User, error)
}
