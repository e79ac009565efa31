package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cadmin/cadmin-api/internal/core/domain"
	"github.com/cadmin/cadmin-api/internal/core/guard"
	"github.com/cadmin/cadmin-api/internal/core/ports"
	"github.com/cadmin/cadmin-api/internal/pkg/validation"
)

// ResourceService implements resource CRUD scoped by ownership.
type ResourceService struct {
	repo     ports.ResourceRepository
	validate *validation.Validator
	logger   zerolog.Logger
}

func NewResourceService(repo ports.ResourceRepository, logger zerolog.Logger) *ResourceService {
	return &ResourceService{repo: repo, validate: validation.New(), logger: logger}
}

// Create stores a new resource owned by p.
func (s *ResourceService) Create(ctx context.Context, p domain.Principal, in ports.CreateResourceInput) (*domain.Resource, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, domain.ErrUnauthenticated
	}

	status := in.Status
	if status == "" {
		status = domain.StatusDraft
	}
	category := domain.DefaultCategory
	if in.Category != nil {
		category = *in.Category
	}

	now := time.Now().UTC()
	resource := &domain.Resource{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Category:    category,
		Metadata:    in.Metadata,
		OwnerID:     p.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, resource); err != nil {
		s.logger.Error().Err(err).Msg("failed to create resource")
		return nil, fmt.Errorf("create resource: %w", err)
	}

	s.logger.Info().Str("resource_id", resource.ID).Str("owner_id", p.ID).Msg("resource created")

	stored, err := s.repo.FindByID(ctx, resource.ID)
	if err != nil {
		return nil, fmt.Errorf("create resource: reload: %w", err)
	}
	return stored, nil
}

// Get returns a single resource if p may see it.
func (s *ResourceService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Resource, error) {
	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guard.Authorize(p, guard.ReadResource{Resource: resource}); err != nil {
		return nil, err
	}
	return resource, nil
}

// List returns a page of resources. Non-admin principals only ever see
// their own; the restriction is part of the query so counts stay correct.
func (s *ResourceService) List(ctx context.Context, p domain.Principal, in ports.ListResourcesInput) (*ports.ListResourcesResult, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	page, limit := normalizePage(in.Page, in.Limit)
	resources, total, err := s.repo.List(ctx, ports.ListResourcesFilter{
		OwnerID:  guard.ResourceScope(p),
		Search:   in.Search,
		Status:   domain.ResourceStatus(in.Status),
		Category: in.Category,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}

	return &ports.ListResourcesResult{
		Resources:  resources,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// Update applies the supplied fields. The owner never changes.
func (s *ResourceService) Update(ctx context.Context, p domain.Principal, id string, in ports.UpdateResourceInput) (*domain.Resource, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guard.Authorize(p, guard.UpdateResource{Resource: resource}); err != nil {
		return nil, err
	}

	changes := domain.ResourceChanges{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Category:    in.Category,
		Metadata:    in.Metadata,
	}
	if changes.Empty() {
		return resource, nil
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, fmt.Errorf("update resource: %w", err)
	}

	s.logger.Info().Str("resource_id", id).Str("by", p.ID).Msg("resource updated")
	return updated, nil
}

// Delete removes a resource if p may manage it.
func (s *ResourceService) Delete(ctx context.Context, p domain.Principal, id string) error {
	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := guard.Authorize(p, guard.DeleteResource{Resource: resource}); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}

	s.logger.Info().Str("resource_id", id).Str("by", p.ID).Msg("resource deleted")
	return nil
}

// Categories counts resources per category within p's scope.
func (s *ResourceService) Categories(ctx context.Context, p domain.Principal) ([]domain.CategoryCount, error) {
	cats, err := s.repo.Categories(ctx, guard.ResourceScope(p), 0)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return cats, nil
}
