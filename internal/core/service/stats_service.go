package service

import (
	"context"
	"fmt"

	"github.com/cadmin/cadmin-api/internal/core/domain"
	"github.com/cadmin/cadmin-api/internal/core/guard"
	"github.com/cadmin/cadmin-api/internal/core/ports"
)

const (
	recentUsersLimit = 5
	topCategoryLimit = 5
)

// StatsService computes the admin dashboard.
type StatsService struct {
	users     ports.UserRepository
	resources ports.ResourceRepository
}

func NewStatsService(users ports.UserRepository, resources ports.ResourceRepository) *StatsService {
	return &StatsService{users: users, resources: resources}
}

// Get returns the dashboard aggregates. Administrators only.
func (s *StatsService) Get(ctx context.Context, p domain.Principal) (*ports.Stats, error) {
	if err := guard.Authorize(p, guard.ViewStats{}); err != nil {
		return nil, err
	}

	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: count users: %w", err)
	}

	byStatus, err := s.resources.CountByStatus(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("stats: count resources: %w", err)
	}

	recent, err := s.users.Recent(ctx, recentUsersLimit)
	if err != nil {
		return nil, fmt.Errorf("stats: recent users: %w", err)
	}

	cats, err := s.resources.Categories(ctx, "", topCategoryLimit)
	if err != nil {
		return nil, fmt.Errorf("stats: categories: %w", err)
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}

	return &ports.Stats{
		TotalUsers:          totalUsers,
		TotalResources:      total,
		ActiveResources:     byStatus[domain.StatusActive],
		DraftResources:      byStatus[domain.StatusDraft],
		ArchivedResources:   byStatus[domain.StatusArchived],
		RecentUsers:         recent,
		ResourcesByCategory: cats,
	}, nil
}
