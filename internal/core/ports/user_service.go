package ports

import (
	"context"

	"github.com/cadmin/cadmin-api/internal/core/domain"
)

// CreateUserInput carries the fields of a new account.
type CreateUserInput struct {
	Email    string      `validate:"required,email"`
	Name     string      `validate:"required,min=1,max=100"`
	Password string      `validate:"required,min=6"`
	Role     domain.Role `validate:"omitempty,oneof=ADMIN USER"`
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Name   *string      `validate:"omitempty,min=1,max=100"`
	Role   *domain.Role `validate:"omitempty,oneof=ADMIN USER"`
	Active *bool
}

// ListUsersInput carries the list endpoint parameters.
type ListUsersInput struct {
	Search string
	Role   string `validate:"omitempty,oneof=SUPER_ADMIN ADMIN USER"`
	Page   int
	Limit  int
}

// ListUsersResult is a page of users.
type ListUsersResult struct {
	Users      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService defines user management use cases. Every method authorizes
// the principal before touching storage.
type UserService interface {
	Create(ctx context.Context, p domain.Principal, in CreateUserInput) (*domain.User, error)
	List(ctx context.Context, p domain.Principal, in ListUsersInput) (*ListUsersResult, error)
	Update(ctx context.Context, p domain.Principal, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
}
