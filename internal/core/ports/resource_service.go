package ports

import (
	"context"

	"github.com/cadmin/cadmin-api/internal/core/domain"
)

// CreateResourceInput carries the fields of a new resource.
type CreateResourceInput struct {
	Title       string                `validate:"required,min=1,max=200"`
	Description *string               `validate:"omitempty,max=2000"`
	Status      domain.ResourceStatus `validate:"omitempty,oneof=ACTIVE DRAFT ARCHIVED"`
	Category    *string               `validate:"omitempty,max=50"`
	Metadata    map[string]any
}

// UpdateResourceInput is a partial update; nil fields are left untouched.
type UpdateResourceInput struct {
	Title       *string                `validate:"omitempty,min=1,max=200"`
	Description *string                `validate:"omitempty,max=2000"`
	Status      *domain.ResourceStatus `validate:"omitempty,oneof=ACTIVE DRAFT ARCHIVED"`
	Category    *string                `validate:"omitempty,max=50"`
	Metadata    map[string]any
}

// ListResourcesInput carries the list endpoint parameters. Ownership is not
// part of the input: it is derived from the principal.
type ListResourcesInput struct {
	Search   string
	Status   string `validate:"omitempty,oneof=ACTIVE DRAFT ARCHIVED"`
	Category string
	Page     int
	Limit    int
}

// ListResourcesResult is a page of resources.
type ListResourcesResult struct {
	Resources  []*domain.Resource
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ResourceService defines resource use cases, scoped by ownership.
type ResourceService interface {
	Create(ctx context.Context, p domain.Principal, in CreateResourceInput) (*domain.Resource, error)
	Get(ctx context.Context, p domain.Principal, id string) (*domain.Resource, error)
	List(ctx context.Context, p domain.Principal, in ListResourcesInput) (*ListResourcesResult, error)
	Update(ctx context.Context, p domain.Principal, id string, in UpdateResourceInput) (*domain.Resource, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
	Categories(ctx context.Context, p domain.Principal) ([]domain.CategoryCount, error)
}
