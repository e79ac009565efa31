package handler

import (
	"github.com/cadmin/cadmin-api/internal/core/domain"
	"github.com/cadmin/cadmin-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateResourceInput(req createResourceRequest) ports.CreateResourceInput {
	return ports.CreateResourceInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.ResourceStatus(req.Status),
		Category:    req.Category,
		Metadata:    req.Metadata,
	}
}

func toUpdateResourceInput(req updateResourceRequest) ports.UpdateResourceInput {
	in := ports.UpdateResourceInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Metadata:    req.Metadata,
	}
	if req.Status != nil {
		s := domain.ResourceStatus(*req.Status)
		in.Status = &s
	}
	return in
}

func toCreateUserInput(req createUserRequest) ports.CreateUserInput {
	return ports.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	}
}

func toUpdateUserInput(req updateUserRequest) ports.UpdateUserInput {
	in := ports.UpdateUserInput{Name: req.Name, Active: req.Active}
	if req.Role != nil {
		r := domain.Role(*req.Role)
		in.Role = &r
	}
	return in
}

// --- Service result → HTTP response ---

func toResourceListResponse(r *ports.ListResourcesResult) resourceListResponse {
	resources := r.Resources
	if resources == nil {
		resources = []*domain.Resource{}
	}
	return resourceListResponse{
		Resources:  resources,
		Total:      r.Total,
		Page:       r.Page,
		Limit:      r.Limit,
		TotalPages: r.TotalPages,
	}
}

func toUserListResponse(r *ports.ListUsersResult) userListResponse {
	users := make([]listedUser, 0, len(r.Users))
	for _, u := range r.Users {
		users = append(users, listedUser{User: u, ResourceCount: u.ResourceCount})
	}
	return userListResponse{
		Users:      users,
		Total:      r.Total,
		Page:       r.Page,
		Limit:      r.Limit,
		TotalPages: r.TotalPages,
	}
}

func toStatsResponse(s *ports.Stats) statsResponse {
	recent := s.RecentUsers
	if recent == nil {
		recent = []*domain.User{}
	}
	cats := s.ResourcesByCategory
	if cats == nil {
		cats = []domain.CategoryCount{}
	}
	return statsResponse{
		TotalUsers:          s.TotalUsers,
		TotalResources:      s.TotalResources,
		ActiveResources:     s.ActiveResources,
		DraftResources:      s.DraftResources,
		ArchivedResources:   s.ArchivedResources,
		RecentUsers:         recent,
		ResourcesByCategory: cats,
	}
}
