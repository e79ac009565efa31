// Package seed loads the demo accounts and sample resources.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cadmin/cadmin-api/internal/core/domain"
	"github.com/cadmin/cadmin-api/internal/core/ports"
	"github.com/cadmin/cadmin-api/internal/core/service"
)

// Demo credentials.
const (
	AdminEmail    = "admin@cadmin.io"
	AdminPassword = "admin123"
	UserEmail     = "user@cadmin.io"
	UserPassword  = "user1234"
)

type account struct {
	email    string
	name     string
	password string
	role     domain.Role
}

var accounts = []account{
	{AdminEmail, "Super Admin", AdminPassword, domain.RoleSuperAdmin},
	{UserEmail, "Demo User", UserPassword, domain.RoleUser},
}

type sample struct {
	title       string
	description string
	category    string
	status      domain.ResourceStatus
}

var samples = []sample{
	{"Q1 Marketing Plan", "Comprehensive marketing strategy for Q1", "Marketing", domain.StatusActive},
	{"API Documentation", "REST API reference documentation", "Engineering", domain.StatusActive},
	{"Brand Guidelines v2", "Updated brand identity and usage guidelines", "Design", domain.StatusActive},
	{"Onboarding Checklist", "New employee onboarding process", "Operations", domain.StatusActive},
	{"Sprint Retrospective Notes", "Notes from latest sprint retro", "Engineering", domain.StatusDraft},
	{"Social Media Calendar", "Monthly social media posting schedule", "Marketing", domain.StatusDraft},
	{"Old Style Guide", "Deprecated style guide from 2023", "Design", domain.StatusArchived},
	{"Infrastructure Runbook", "Procedures for common infra tasks", "Engineering", domain.StatusActive},
}

// Result reports what Run created.
type Result struct {
	UsersCreated     int
	ResourcesCreated int
}

// Run creates the demo accounts that do not exist yet and, when the store
// holds no resources, the sample resources. Running it twice is a no-op.
func Run(ctx context.Context, users ports.UserRepository, resources ports.ResourceRepository, bcryptCost int, log zerolog.Logger) (Result, error) {
	var res Result
	owners := make([]*domain.User, 0, len(accounts))

	base := time.Now().UTC()
	for i, a := range accounts {
		existing, err := users.FindByEmail(ctx, a.email)
		if err == nil {
			owners = append(owners, existing)
			continue
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return res, fmt.Errorf("seed: find %s: %w", a.email, err)
		}

		hash, err := service.HashPassword(a.password, bcryptCost)
		if err != nil {
			return res, fmt.Errorf("seed: %w", err)
		}
		u := &domain.User{
			ID:           uuid.NewString(),
			Email:        a.email,
			Name:         a.name,
			PasswordHash: hash,
			Role:         a.role,
			Active:       true,
			CreatedAt:    base.Add(time.Duration(i) * time.Millisecond),
		}
		if err := users.Create(ctx, u); err != nil {
			return res, fmt.Errorf("seed: create %s: %w", a.email, err)
		}
		owners = append(owners, u)
		res.UsersCreated++
	}

	_, total, err := resources.List(ctx, ports.ListResourcesFilter{Page: 1, Limit: 1})
	if err != nil {
		return res, fmt.Errorf("seed: count resources: %w", err)
	}
	if total > 0 {
		log.Info().Int("users_created", res.UsersCreated).Msg("seed: resources already present, skipping")
		return res, nil
	}

	for i, s := range samples {
		desc := s.description
		at := base.Add(time.Duration(i) * time.Second)
		r := &domain.Resource{
			ID:          uuid.NewString(),
			Title:       s.title,
			Description: &desc,
			Status:      s.status,
			Category:    s.category,
			OwnerID:     owners[i%len(owners)].ID,
			CreatedAt:   at,
			UpdatedAt:   at,
		}
		if err := resources.Create(ctx, r); err != nil {
			return res, fmt.Errorf("seed: create resource %q: %w", s.title, err)
		}
		res.ResourcesCreated++
	}

	log.Info().
		Int("users_created", res.UsersCreated).
		Int("resources_created", res.ResourcesCreated).
		Msg("seed complete")
	return res, nil
}
