package ports

import (
	"context"

	"github.com/cadmin/cadmin-api/internal/core/domain"
)

// Stats is the dashboard aggregate.
type Stats struct {
	TotalUsers          int64
	TotalResources      int64
	ActiveResources     int64
	DraftResources      int64
	ArchivedResources   int64
	RecentUsers         []*domain.User
	ResourcesByCategory []domain.CategoryCount
}

// StatsService computes dashboard aggregates for administrators.
type StatsService interface {
	Get(ctx context.Context, p domain.Principal) (*Stats, error)
}
