package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cadmin/cadmin-api/internal/core/domain"
	"github.com/cadmin/cadmin-api/internal/core/guard"
	"github.com/cadmin/cadmin-api/internal/core/ports"
	"github.com/cadmin/cadmin-api/internal/pkg/validation"
)

// UserService implements account management.
type UserService struct {
	users      ports.UserRepository
	resources  ports.ResourceRepository
	validate   *validation.Validator
	bcryptCost int
	log        zerolog.Logger
}

func NewUserService(users ports.UserRepository, resources ports.ResourceRepository, bcryptCost int, log zerolog.Logger) *UserService {
	return &UserService{
		users:      users,
		resources:  resources,
		validate:   validation.New(),
		bcryptCost: bcryptCost,
		log:        log,
	}
}

// Create adds an account. Only super admins may create admins; duplicate
// emails fail with domain.ErrEmailTaken and leave the existing record alone.
func (s *UserService) Create(ctx context.Context, p domain.Principal, in ports.CreateUserInput) (*domain.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = domain.RoleUser
	}

	if err := guard.Authorize(p, guard.CreateUser{Role: in.Role}); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("create user: %w", err)
	}

	hash, err := HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         in.Role,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Str("by", p.ID).Msg("user created")
	return user, nil
}

// List returns a page of users. Administrators only.
func (s *UserService) List(ctx context.Context, p domain.Principal, in ports.ListUsersInput) (*ports.ListUsersResult, error) {
	if err := guard.Authorize(p, guard.ListUsers{}); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	page, limit := normalizePage(in.Page, in.Limit)
	users, total, err := s.users.List(ctx, ports.ListUsersFilter{
		Search: in.Search,
		Role:   domain.Role(in.Role),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return &ports.ListUsersResult{
		Users:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// Update applies the supplied fields to the user with the given id.
func (s *UserService) Update(ctx context.Context, p domain.Principal, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := guard.Authorize(p, guard.UpdateUser{Target: target, NewRole: in.Role}); err != nil {
		return nil, err
	}

	changes := domain.UserChanges{Name: in.Name, Role: in.Role, Active: in.Active}
	if changes.Name == nil && changes.Role == nil && changes.Active == nil {
		return target, nil
	}

	updated, err := s.users.Update(ctx, id, changes)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log.Info().Str("user_id", id).Str("by", p.ID).Msg("user updated")
	return updated, nil
}

// Delete removes a user. Super admins only, never a super admin, and never
// while the user still owns resources.
func (s *UserService) Delete(ctx context.Context, p domain.Principal, id string) error {
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := guard.Authorize(p, guard.DeleteUser{Target: target}); err != nil {
		return err
	}

	owned, err := s.resources.CountByOwner(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if owned > 0 {
		return fmt.Errorf("%w: %d resources", domain.ErrUserOwnsResources, owned)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info().Str("user_id", id).Str("by", p.ID).Msg("user deleted")
	return nil
}
