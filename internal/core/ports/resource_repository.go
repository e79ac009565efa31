package ports

import (
	"context"

	"github.com/cadmin/cadmin-api/internal/core/domain"
)

// ListResourcesFilter carries all query parameters for listing resources.
// OwnerID is always set by the service layer from the guard's scope.
type ListResourcesFilter struct {
	OwnerID  string                // empty = no filter (admin); non-empty = scoped to owner
	Search   string                // optional: case-insensitive match on title or description
	Status   domain.ResourceStatus // optional
	Category string                // optional: exact match
	Page     int                   // 1-based
	Limit    int
}

// ResourceRepository defines persistence operations for resources.
// Returned resources have Owner populated.
type ResourceRepository interface {
	Create(ctx context.Context, r *domain.Resource) error
	FindByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context, filter ListResourcesFilter) ([]*domain.Resource, int64, error)
	Update(ctx context.Context, id string, changes domain.ResourceChanges) (*domain.Resource, error)
	Delete(ctx context.Context, id string) error

	// CountByOwner returns how many resources ownerID owns.
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	// CountByStatus counts resources per status within the owner scope
	// ("" = all owners).
	CountByStatus(ctx context.Context, ownerID string) (map[domain.ResourceStatus]int64, error)
	// Categories groups resources by category within the owner scope,
	// ordered by count descending. limit <= 0 returns every category.
	Categories(ctx context.Context, ownerID string, limit int) ([]domain.CategoryCount, error)
}
